package notification

import (
	"context"
	"drnote/internal/domain/constant"
	appErrors "drnote/internal/pkg/errors"
	"fmt"
)

// AuthorizationStatus returns the persisted authorization decision.
func (c *Center) AuthorizationStatus(ctx context.Context) (constant.AuthorizationStatus, error) {
	setting, err := c.settings.Get(ctx)
	if err != nil {
		return constant.AuthorizationUndetermined, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return setting.GetStatus(), nil
}

// RequestAuthorization asks the user for permission if no decision exists
// yet and persists the answer. An existing decision is returned as is.
func (c *Center) RequestAuthorization(ctx context.Context, opts constant.AuthorizationOptions) (bool, error) {
	c.authMu.Lock()
	defer c.authMu.Unlock()

	setting, err := c.settings.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	switch setting.GetStatus() {
	case constant.AuthorizationAuthorized:
		return true, nil
	case constant.AuthorizationDenied:
		return false, nil
	}

	if c.prompter == nil {
		return false, fmt.Errorf("%w: no authorization prompter configured", appErrors.ErrInternalServer)
	}
	granted, err := c.prompter.Prompt(ctx, opts)
	if err != nil {
		return false, err
	}

	if granted {
		setting.SetStatus(constant.AuthorizationAuthorized)
		setting.Options = uint(opts)
	} else {
		setting.SetStatus(constant.AuthorizationDenied)
		setting.Options = 0
	}
	setting.UpdatedAt = c.now()
	if err := c.settings.Save(ctx, setting); err != nil {
		return false, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	c.log.Info(fmt.Sprintf("Notification authorization decided: %s", setting.GetStatus()))
	return granted, nil
}

// SetAuthorizationStatus records a decision made outside the application,
// such as the user changing notification settings.
func (c *Center) SetAuthorizationStatus(ctx context.Context, status constant.AuthorizationStatus) error {
	c.authMu.Lock()
	defer c.authMu.Unlock()

	setting, err := c.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	setting.SetStatus(status)
	if status != constant.AuthorizationAuthorized {
		setting.Options = 0
	} else if setting.Options == 0 {
		setting.Options = uint(constant.AuthorizeAlert | constant.AuthorizeSound | constant.AuthorizeList)
	}
	setting.UpdatedAt = c.now()
	if err := c.settings.Save(ctx, setting); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	c.log.Info(fmt.Sprintf("Notification authorization changed externally: %s", status))
	return nil
}

// StaticPrompter answers authorization prompts with a fixed decision.
type StaticPrompter struct {
	Granted bool
}

// Prompt returns the configured decision.
func (p StaticPrompter) Prompt(_ context.Context, _ constant.AuthorizationOptions) (bool, error) {
	return p.Granted, nil
}
