package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/roperzh/mobileconfig"
	"github.com/spf13/cobra"
)

var (
	definitionFile string
	outputFile     string
	profileUUID    string
	statePath      string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed profiles by domain",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		inventory, err := client.Items(cmd.Context())
		if err != nil {
			return err
		}

		domains := make([]string, 0, len(inventory))
		for domain := range inventory {
			domains = append(domains, domain)
		}
		sort.Strings(domains)

		for _, domain := range domains {
			fmt.Printf("%s:\n", domain)
			for _, profile := range inventory[domain] {
				fmt.Printf("  %s\t%s\n", profile.ProfileIdentifier, profile.ProfileDisplayName)
			}
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <identifier>",
	Short: "Check whether a profile is installed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		installed, err := client.Exists(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(installed)
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate -f <definition.yaml>",
	Short: "Generate a profile document from a YAML definition",
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := loadDefinition(definitionFile)
		if err != nil {
			return err
		}

		uuid := profileUUID
		if uuid == "" {
			uuid = def.UUID
		}

		raw, err := mobileconfig.Generate(def.Identifier, uuid, def.Options())
		if err != nil {
			return err
		}

		if outputFile == "" {
			_, err = os.Stdout.Write(raw)
			return err
		}
		return os.WriteFile(outputFile, raw, 0644)
	},
}

var installCmd = &cobra.Command{
	Use:   "install <path>",
	Short: "Install a profile from a .mobileconfig file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		return client.Install(cmd.Context(), args[0])
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <identifier>",
	Short: "Remove an installed profile by identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		if err := client.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}

		if statePath != "" {
			store, err := mobileconfig.NewBoltStore(statePath)
			if err != nil {
				return err
			}
			defer store.Close()
			return store.DeleteProfile(cmd.Context(), args[0])
		}
		return nil
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply -f <definition.yaml>",
	Short: "Install a profile definition unless it is already current",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		def, err := loadDefinition(definitionFile)
		if err != nil {
			return err
		}

		var store mobileconfig.Store
		if statePath != "" {
			boltStore, err := mobileconfig.NewBoltStore(statePath)
			if err != nil {
				return err
			}
			defer boltStore.Close()
			store = boltStore
		}

		result, err := client.Apply(cmd.Context(), *def, store)
		if err != nil {
			return err
		}

		if result.Changed {
			fmt.Printf("installed %s (%s)\n", result.Identifier, result.Digest)
		} else {
			fmt.Printf("unchanged %s\n", result.Identifier)
		}
		return nil
	},
}

func loadDefinition(path string) (*mobileconfig.Definition, error) {
	if path == "" {
		return nil, fmt.Errorf("a definition file is required, pass one with -f")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return mobileconfig.LoadDefinition(raw)
}

func init() {
	generateCmd.Flags().StringVarP(&definitionFile, "file", "f", "", "Path to the YAML profile definition")
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the document here instead of stdout")
	generateCmd.Flags().StringVar(&profileUUID, "uuid", "", "Pin the document UUID (testing)")

	applyCmd.Flags().StringVarP(&definitionFile, "file", "f", "", "Path to the YAML profile definition")
	applyCmd.Flags().StringVar(&statePath, "state", "", "Path to the local profile state database")

	removeCmd.Flags().StringVar(&statePath, "state", "", "Path to the local profile state database")
}
