// profilectl is an operator CLI for the profile contract: it reads public
// profiles and, given a local key, submits the write-path transactions that a
// browser wallet would otherwise sign.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/aptlinks/backend/config"
	"github.com/aptlinks/backend/internal/ans"
	"github.com/aptlinks/backend/internal/avatar"
	"github.com/aptlinks/backend/internal/chain"
	"github.com/aptlinks/backend/internal/service"
	"github.com/aptlinks/backend/internal/types"
)

var (
	flagNodeURL  string
	flagContract string
	flagKeyFile  string
	flagName     string
	flagBio      string
	flagAvatar   string
	flagLinks    []string
	flagTimeout  time.Duration
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if flagNodeURL != "" {
		cfg.NodeURL = flagNodeURL
	}
	if flagContract != "" {
		cfg.ContractAddress = flagContract
	}
	return cfg, nil
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), flagTimeout)
}

// parseLinks turns repeated "Title=URL" flags into profile links, in flag
// order.
func parseLinks(raw []string) ([]types.ProfileLink, error) {
	links := make([]types.ProfileLink, 0, len(raw))
	for _, entry := range raw {
		title, url, found := strings.Cut(entry, "=")
		if !found || url == "" {
			return nil, fmt.Errorf("invalid link %q, expected Title=URL", entry)
		}
		links = append(links, types.NewProfileLink(title, url))
	}
	return links, nil
}

func loadSubmitter(cfg *config.Config) (*chain.LocalSubmitter, error) {
	if flagKeyFile == "" {
		return nil, fmt.Errorf("--key is required for write commands")
	}
	account, err := chain.AccountFromKeyFile(flagKeyFile)
	if err != nil {
		return nil, err
	}
	return chain.NewLocalSubmitter(chain.NewClient(cfg), account), nil
}

// withSpinner runs fn behind an animated spinner.
func withSpinner(msg string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond)
	s.Suffix = " " + msg
	s.Start()
	err := fn()
	s.Stop()
	return err
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "profilectl",
	Short: "Read and write link-in-bio profiles on Aptos",
	Long: `profilectl reads public profiles through the same resolution pipeline the
API serves, and submits create/set-bio/add-links transactions signed with a
local key for operating on devnet without a browser wallet.`,
	SilenceUsage: true,
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Resolve a name and print the assembled profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext()
		defer cancel()

		client := chain.NewClient(cfg)
		resolver := ans.NewResolver(cfg, nil)
		avatars := avatar.NewResolver(cfg, nil)
		profiles := service.NewProfileService(resolver, client, avatars)

		var profile *types.Profile
		err = withSpinner("fetching profile", func() error {
			profile, err = profiles.Fetch(ctx, args[0])
			return err
		})
		if err != nil {
			return err
		}
		return printJSON(profile)
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Resolve a name to its target address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext()
		defer cancel()

		address, err := ans.NewResolver(cfg, nil).ResolveAddress(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(address)
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or update the profile for the local key",
	Long: `save checks whether the key's account already holds a profile, then submits
either a single create transaction or a set-bio transaction followed, when
links are given, by an add-links transaction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		submitter, err := loadSubmitter(cfg)
		if err != nil {
			return err
		}
		links, err := parseLinks(flagLinks)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext()
		defer cancel()

		client := chain.NewClient(cfg)
		editor := service.NewEditorService(client, client)
		draft := types.ProfileDraft{
			Name:   flagName,
			Bio:    flagBio,
			Avatar: flagAvatar,
			Links:  links,
		}

		err = withSpinner("submitting transactions", func() error {
			return editor.Save(ctx, submitter, submitter.Address(), draft)
		})
		if err != nil {
			return err
		}
		fmt.Printf("profile saved for %s\n", submitter.Address())
		return nil
	},
}

var addLinksCmd = &cobra.Command{
	Use:   "add-links",
	Short: "Append links to the existing profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		submitter, err := loadSubmitter(cfg)
		if err != nil {
			return err
		}
		links, err := parseLinks(flagLinks)
		if err != nil {
			return err
		}
		if len(links) == 0 {
			return fmt.Errorf("at least one --link is required")
		}
		ctx, cancel := commandContext()
		defer cancel()

		client := chain.NewClient(cfg)
		payload := client.AddLinksPayload(links)

		return withSpinner("submitting add_links", func() error {
			hash, err := submitter.SignAndSubmit(ctx, payload)
			if err != nil {
				return err
			}
			return submitter.WaitForTransaction(ctx, hash)
		})
	},
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a local account and print its address",
	RunE: func(cmd *cobra.Command, args []string) error {
		account, err := chain.NewAccount()
		if err != nil {
			return err
		}
		fmt.Printf("address: %s\npublic key: %s\nprivate key: %s\n",
			account.Address(), account.PublicKeyHex(), account.SeedHex())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagNodeURL, "node", "", "fullnode URL (overrides APTOS_NODE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagContract, "contract", "", "profile contract address (overrides CONTRACT_ADDRESS)")
	rootCmd.PersistentFlags().StringVar(&flagKeyFile, "key", "", "path to a hex-encoded ed25519 seed file")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 2*time.Minute, "overall command timeout")

	for _, cmd := range []*cobra.Command{saveCmd, addLinksCmd} {
		cmd.Flags().StringVar(&flagName, "name", "", "display name")
		cmd.Flags().StringVar(&flagBio, "bio", "", "bio text")
		cmd.Flags().StringVar(&flagAvatar, "avatar", "", "avatar URL or ipfs:// pointer")
		cmd.Flags().StringArrayVar(&flagLinks, "link", nil, "link as Title=URL, repeatable, order preserved")
	}

	rootCmd.AddCommand(showCmd, resolveCmd, saveCmd, addLinksCmd, keygenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
