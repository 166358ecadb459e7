package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portal/internal/content"
	"portal/internal/preview"
	"portal/pkg/breakpoint"
	"portal/pkg/carousel"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the announcement banner in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		banner, err := content.LoadBanner()
		if err != nil {
			return err
		}
		c, err := carousel.New(banner.Slides, banner.Interval)
		if err != nil {
			return fmt.Errorf("mount banner: %w", err)
		}

		vp := breakpoint.NewReportedViewport(breakpoint.DefaultWidth)
		obs := breakpoint.NewObserver(vp, breakpoint.WithLogger(logger.Named("breakpoint")))
		defer obs.Dispose()

		p := tea.NewProgram(preview.New(c, vp, obs.Read()), tea.WithAltScreen())
		obs.Subscribe(func(st breakpoint.State) {
			p.Send(preview.TierMsg(st))
		})
		if _, err := p.Run(); err != nil {
			logger.Error("preview failed", zap.Error(err))
			return err
		}
		return nil
	},
}
