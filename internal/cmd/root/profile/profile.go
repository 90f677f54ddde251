package profile

import (
	"fmt"

	"github.com/pidbase/pidctl/internal/cmd"
	"github.com/pidbase/pidctl/internal/meta"
	"github.com/pidbase/pidctl/internal/util/i18n"
	"github.com/pidbase/pidctl/internal/util/normalizers"
	"github.com/segmentio/cli"
	"github.com/spf13/cobra"
)

var (
	profileUse   = "profile"
	profileShort = i18n.T("root.profile.profileShort", "Manage CLI profiles")
	profileLong  = normalizers.LongDesc(i18n.T("root.profile.profileLong", `
		The profile command lists, creates, and deletes configuration profiles.
		A profile is a named top-level section of the configuration file; the
		active profile is selected with the --profile flag or the
		`+meta.EnvVarPrefix+`_PROFILE environment variable.`))
	profileExample = normalizers.Examples(i18n.T("root.profile.profileExamples",
		fmt.Sprintf(`
		# List all profiles
		%[1]s profile list
		# Show the settings of one profile
		%[1]s profile list ci
		# Create a new profile and save it to the configuration file
		%[1]s profile create staging
		`, meta.CLIName)))
)

// Build a new instance of the profile command
func NewProfileCmd() *cobra.Command {
	rv := &cobra.Command{
		Use:     profileUse,
		Short:   profileShort,
		Long:    profileLong,
		Example: profileExample,
		Aliases: []string{"profiles"},
	}

	rv.AddCommand(newListCmd())
	rv.AddCommand(newCreateCmd())
	rv.AddCommand(newDeleteCmd())

	return rv
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [profile-name]",
		Short: i18n.T("root.profile.listShort", "List profiles or show one profile's settings"),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runList(cmd.BuildHelper(c, args))
		},
	}
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <profile-name>",
		Short: i18n.T("root.profile.createShort", "Create a new profile"),
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runCreate(cmd.BuildHelper(c, args))
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <profile-name>",
		Short: i18n.T("root.profile.deleteShort", "Delete a profile"),
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runDelete(cmd.BuildHelper(c, args))
		},
	}
}

func runList(helper cmd.Helper) error {
	mgr, err := helper.GetProfileManager()
	if err != nil {
		return err
	}

	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}
	p, err := cli.Format(outType.String(), helper.GetStreams().Out)
	if err != nil {
		return err
	}
	defer p.Flush()

	if args := helper.GetArgs(); len(args) == 1 {
		prof, err := mgr.GetProfile(args[0])
		if err != nil {
			return &cmd.ConfigurationError{Err: err}
		}
		p.Print(prof)
		return nil
	}

	p.Print(mgr.GetProfiles())
	return nil
}

func runCreate(helper cmd.Helper) error {
	mgr, err := helper.GetProfileManager()
	if err != nil {
		return err
	}

	name := helper.GetArgs()[0]
	if err := mgr.CreateProfile(name); err != nil {
		return &cmd.ConfigurationError{Err: err}
	}

	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return cmd.PrepareExecutionErrorWithHelper(helper,
			fmt.Sprintf("failed to save profile %s", name), err)
	}

	out, err := helper.GetOutput()
	if err != nil {
		return err
	}
	out.Write(fmt.Sprintf("Created profile %s", name))
	return nil
}

func runDelete(helper cmd.Helper) error {
	mgr, err := helper.GetProfileManager()
	if err != nil {
		return err
	}

	if err := mgr.DeleteProfile(helper.GetArgs()[0]); err != nil {
		return &cmd.ConfigurationError{Err: err}
	}
	return nil
}
