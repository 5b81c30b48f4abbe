package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/breathe/internal/config"
)

// completePatternNames completes catalog pattern names for positional
// arguments and --pattern flags. Completion never fails loudly: any load
// problem yields no suggestions.
func completePatternNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx := cmd.Context()
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cat, err := loadCatalog(ctx, cfg, GetLogger())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	prefix := strings.ToLower(toComplete)
	var names []string
	for _, name := range cat.Names() {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// registerPatternFlagCompletion wires pattern name completion to the
// --pattern flag and YAML file completion to the --file flag.
func registerPatternFlagCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("pattern", completePatternNames)
	_ = cmd.RegisterFlagCompletionFunc("file", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})
}
