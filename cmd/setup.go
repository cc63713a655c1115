package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard for Clipcast",
	Long:  `Configure OAuth client credentials and write the .env file.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("📼 Clipcast Setup"))

	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	if err := configureOAuth(env); err != nil {
		return err
	}

	if err := configureOptional(env); err != nil {
		return err
	}

	if err := writeEnvFile(env); err != nil {
		return err
	}

	fmt.Println(successStyle.Render("✓ Wrote .env"))
	fmt.Println(infoStyle.Render("Next: clipcast auth"))
	return nil
}

func configureOAuth(env map[string]string) error {
	fmt.Println(infoStyle.Render(`
To create OAuth credentials:
1. Go to https://console.cloud.google.com/apis/credentials
2. Click "Create Credentials" → "OAuth client ID"
3. Choose "Desktop app" as application type
4. Copy the Client ID and Client Secret
`))

	var clientID, clientSecret string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("YouTube Client ID").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("client ID is required")
					}
					return nil
				}).
				Value(&clientID),
			huh.NewInput().
				Title("YouTube Client Secret").
				EchoMode(huh.EchoModePassword).
				Value(&clientSecret),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	env["YOUTUBE_CLIENT_ID"] = strings.TrimSpace(clientID)
	if secret := strings.TrimSpace(clientSecret); secret != "" {
		env["YOUTUBE_CLIENT_SECRET"] = secret
	} else {
		fmt.Println(infoStyle.Render("No secret entered - set YOUTUBE_CLIENT_SECRET_NAME to read it from Secret Manager"))
	}

	return nil
}

func configureOptional(env map[string]string) error {
	var project, tokenPath string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Google Cloud project").
				Description("Optional, needed for gs:// uploads and Secret Manager").
				Value(&project),
			huh.NewInput().
				Title("Token path").
				Placeholder("./youtube_token.json").
				Value(&tokenPath),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if project = strings.TrimSpace(project); project != "" {
		env["GOOGLE_CLOUD_PROJECT"] = project
	}
	if tokenPath = strings.TrimSpace(tokenPath); tokenPath != "" {
		env["YOUTUBE_TOKEN_PATH"] = tokenPath
	}

	return nil
}

func writeEnvFile(env map[string]string) error {
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, env[key])
	}

	if err := os.WriteFile(".env", []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write .env: %w", err)
	}

	return nil
}

func runWithSpinner(title string, fn func() error) error {
	var fnErr error
	err := spinner.New().
		Title(title).
		Action(func() { fnErr = fn() }).
		Run()
	if err != nil {
		return err
	}
	return fnErr
}
