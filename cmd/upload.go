package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"clipcast/internal/source"
	"clipcast/internal/uploader"
	"clipcast/internal/youtube"
	"clipcast/pkg/config"
)

var (
	uploadTitle       string
	uploadDescription string
	uploadTags        []string
	uploadPrivacy     string
	uploadPublishAt   string
)

var (
	uploadStatusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	uploadProgressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	uploadDoneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file | gs://bucket/object>",
	Short: "Upload a video to YouTube",
	Long: `Upload a video file from local disk or Cloud Storage to YouTube.
Metadata can be passed as flags; anything missing is asked for interactively.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadTitle, "title", "t", "", "Video title")
	uploadCmd.Flags().StringVarP(&uploadDescription, "description", "d", "", "Video description")
	uploadCmd.Flags().StringSliceVar(&uploadTags, "tags", nil, "Comma-separated tags")
	uploadCmd.Flags().StringVarP(&uploadPrivacy, "privacy", "p", "", "Privacy status (private|unlisted|public)")
	uploadCmd.Flags().StringVar(&uploadPublishAt, "publish-at", "", "Scheduled publish time (RFC3339, requires private)")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	auth := newAuth(cfg)
	if !auth.Ready() {
		return fmt.Errorf("not configured: run clipcast setup first")
	}

	var payload *source.Payload
	err = runWithSpinner("Opening "+args[0], func() error {
		var openErr error
		payload, openErr = source.Open(ctx, args[0], cfg.Upload.CacheDir)
		return openErr
	})
	if err != nil {
		return err
	}
	defer func() { _ = payload.Close() }()
	if payload.Size == 0 {
		return fmt.Errorf("%s is empty", args[0])
	}

	req, err := buildRequest(cfg, payload)
	if err != nil {
		return err
	}

	service := uploader.NewService(auth, youtube.NewClient(nil))

	result, err := service.Upload(ctx, req, printStatus, printProgress)
	fmt.Println()
	if err != nil {
		return err
	}

	// Keep the refreshed credential for the next run.
	if saveErr := saveToken(cfg.YouTubeTokenPath, auth.Credential()); saveErr != nil {
		fmt.Println(authErrorStyle.Render("warning: " + saveErr.Error()))
	}

	fmt.Println(uploadDoneStyle.Render("✓ Upload complete"))
	fmt.Println(uploadDoneStyle.Render("  " + result.URL))
	return nil
}

func buildRequest(cfg *config.Config, payload *source.Payload) (uploader.Request, error) {
	req := uploader.Request{
		Payload:     payload,
		Size:        payload.Size,
		ContentType: payload.ContentType,
		Title:       strings.TrimSpace(uploadTitle),
		Description: uploadDescription,
		Tags:        append(uploadTags, cfg.YouTube.DefaultTags...),
		Visibility:  uploader.Visibility(uploadPrivacy),
	}
	if req.Visibility == "" {
		req.Visibility = uploader.Visibility(cfg.YouTube.PrivacyStatus)
	}

	if req.Title == "" {
		if err := metadataForm(&req); err != nil {
			return uploader.Request{}, err
		}
	}

	if uploadPublishAt != "" {
		publishAt, err := time.Parse(time.RFC3339, uploadPublishAt)
		if err != nil {
			return uploader.Request{}, fmt.Errorf("invalid --publish-at value: %w", err)
		}
		req.PublishAt = publishAt
	}

	return req, nil
}

// metadataForm asks for the fields that were not passed as flags.
func metadataForm(req *uploader.Request) error {
	var tags string
	privacy := string(req.Visibility)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}).
				Value(&req.Title),
			huh.NewText().
				Title("Description").
				Value(&req.Description),
			huh.NewInput().
				Title("Tags").
				Description("Comma-separated, optional").
				Value(&tags),
			huh.NewSelect[string]().
				Title("Privacy").
				Options(
					huh.NewOption("Private", string(uploader.VisibilityPrivate)),
					huh.NewOption("Unlisted", string(uploader.VisibilityUnlisted)),
					huh.NewOption("Public", string(uploader.VisibilityPublic)),
				).
				Value(&privacy),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Visibility = uploader.Visibility(privacy)
	for _, tag := range strings.Split(tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			req.Tags = append(req.Tags, tag)
		}
	}

	return nil
}

func printStatus(status uploader.Status) {
	fmt.Println(uploadStatusStyle.Render("• " + string(status)))
}

func printProgress(percent int) {
	fmt.Printf("\r%s", uploadProgressStyle.Render(fmt.Sprintf("  uploading... %3d%%", percent)))
}
