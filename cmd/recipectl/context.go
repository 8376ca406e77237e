package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"recipectl/internal/actions"
	"recipectl/internal/config"
	"recipectl/internal/dispatch"
	"recipectl/internal/events"
	"recipectl/internal/logging"
	"recipectl/internal/notifications"
)

type commandContext struct {
	configFlag *string
	serverFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, serverFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		serverFlag: serverFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.serverFlag != nil && strings.TrimSpace(*c.serverFlag) != "" {
			cfg.Server.BaseURL = strings.TrimRight(strings.TrimSpace(*c.serverFlag), "/")
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withService wires the full client stack for one command invocation and
// tears it down afterwards. Notifications produced while fn runs are rendered
// to the command's stderr once fn returns.
func (c *commandContext) withService(cmd *cobra.Command, fn func(context.Context, *actions.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	bus := events.NewBus()
	defer bus.Close()

	manager := notifications.NewManager(bus, logger,
		notifications.WithDismissAfter(cfg.DismissAfter()))
	defer manager.Close()

	client := &http.Client{Timeout: cfg.RequestTimeout()}
	dispatcher := dispatch.New(cfg.Server.BaseURL, cfg.Server.CSRFToken, client, bus, manager, logger)
	service := actions.New(dispatcher, bus, nil, logger)

	runErr := fn(cmd.Context(), service)
	renderNotifications(cmd.ErrOrStderr(), manager.Active())
	return runErr
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
