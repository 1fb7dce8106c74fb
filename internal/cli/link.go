package cli

import (
	"fmt"
	"path/filepath"

	"github.com/enyojs/enyo-dev/internal/config"
	"github.com/enyojs/enyo-dev/internal/library"
	"github.com/enyojs/enyo-dev/internal/manifest"
	"github.com/spf13/cobra"
)

var (
	linkName string
	linkList bool
)

func init() {
	linkCmd.Flags().StringVar(&linkName, "name", "", "Library name (defaults to the package.json name or directory name)")
	linkCmd.Flags().BoolVar(&linkList, "list", false, "List registered libraries")
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link [dir]",
	Short: "Make a library checkout available for linking",
	Long: `Register a library checkout in the shared links directory so projects can
link it with 'enyo init --links <name>' or '--link-all-libs'.

Example:
  enyo link ~/src/moonstone
  enyo link . --name enyo
  enyo link --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		linksDir := config.LinksDir()
		out := cmd.OutOrStdout()

		if linkList {
			libs, err := library.Shared(linksDir)
			if err != nil {
				return err
			}
			if len(libs) == 0 {
				fmt.Fprintf(out, "No libraries registered in %s\n", linksDir)
				return nil
			}
			for _, lib := range libs {
				status := ""
				if lib.Broken {
					status = " (missing)"
				}
				fmt.Fprintf(out, "  %-20s → %s%s\n", lib.Name, lib.Target, status)
			}
			return nil
		}

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		name, err := libraryName(dir, linkName)
		if err != nil {
			return err
		}

		if err := library.Register(linksDir, name, dir); err != nil {
			return fmt.Errorf("registering %s: %w", name, err)
		}
		log.WithLibrary(name).Success("registered for linking")
		fmt.Fprintf(out, "Linked %s → %s\n", filepath.Join(linksDir, name), dir)
		return nil
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <name>",
	Short: "Remove a library from the shared links directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := library.Unregister(config.LinksDir(), name); err != nil {
			return fmt.Errorf("unregistering %s: %w", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Unlinked %s\n", name)
		return nil
	},
}

// libraryName picks the registration name for the checkout at dir.
func libraryName(dir, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	name, ok, err := manifest.ReadName(dir)
	if err != nil {
		return "", err
	}
	if ok {
		return name, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return filepath.Base(abs), nil
}
