package app

import (
	"context"
	"fmt"
	"slices"

	"gitlab.com/yelinaung/freelance-ledger/internal/logger"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
)

// AddProject stores a new project. An empty ID is replaced by a fresh one,
// timestamps are set to now and the status is derived from the dates.
func (a *App) AddProject(ctx context.Context, p models.Project) (models.Project, error) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	now := a.now()
	if p.ID == "" {
		p.ID = a.newID()
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	p = models.Normalize(p, now)

	err := a.projectStore.Append(ctx, p)
	a.record(ctx, "add_project", err)
	if err != nil {
		return models.Project{}, fmt.Errorf("add project: %w", err)
	}

	logger.Log.Info().
		Str("project_id", logger.HashID(p.ID)).
		Str("status", string(p.Status)).
		Msg("Project added")
	a.afterWrite(ctx, a.refreshProjects)
	return p, nil
}

// UpdateProject replaces the stored project with the same ID. The original
// creation time is kept.
func (a *App) UpdateProject(ctx context.Context, p models.Project) (models.Project, error) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	now := a.now()
	if existing, ok := a.Project(p.ID); ok {
		p.CreatedAt = existing.CreatedAt
	}
	p.UpdatedAt = now
	p = models.Normalize(p, now)

	err := a.projectStore.Replace(ctx, p)
	a.record(ctx, "update_project", err)
	if err != nil {
		return models.Project{}, fmt.Errorf("update project: %w", err)
	}

	logger.Log.Info().
		Str("project_id", logger.HashID(p.ID)).
		Str("status", string(p.Status)).
		Msg("Project updated")
	a.afterWrite(ctx, a.refreshProjects)
	return p, nil
}

// CompleteProject marks a project completed now. A project that is already
// completed keeps its completion date and is returned unchanged.
func (a *App) CompleteProject(ctx context.Context, id string) (models.Project, error) {
	p, ok := a.Project(id)
	if !ok {
		p = models.Project{ID: id}
	}
	if p.CompletedDate != nil {
		return p, nil
	}
	now := a.now()
	p.Status = models.StatusCompleted
	p.CompletedDate = &now
	return a.UpdateProject(ctx, p)
}

// DeleteProject removes a project.
func (a *App) DeleteProject(ctx context.Context, id string) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	err := a.projectStore.Remove(ctx, id)
	a.record(ctx, "delete_project", err)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	logger.Log.Info().Str("project_id", logger.HashID(id)).Msg("Project deleted")
	a.afterWrite(ctx, a.refreshProjects)
	return nil
}

// AddClient stores a new client.
func (a *App) AddClient(ctx context.Context, c models.Client) (models.Client, error) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	now := a.now()
	if c.ID == "" {
		c.ID = a.newID()
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	err := a.clientStore.Append(ctx, c)
	a.record(ctx, "add_client", err)
	if err != nil {
		return models.Client{}, fmt.Errorf("add client: %w", err)
	}

	logger.Log.Info().
		Str("client_id", logger.HashID(c.ID)).
		Str("name", logger.SanitizeText(c.Name)).
		Str("email", logger.SanitizeEmail(c.Email)).
		Msg("Client added")
	a.afterWrite(ctx, a.refreshClients)
	return c, nil
}

// UpdateClient replaces the stored client with the same ID.
func (a *App) UpdateClient(ctx context.Context, c models.Client) (models.Client, error) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	if existing, ok := a.Client(c.ID); ok {
		c.CreatedAt = existing.CreatedAt
	}
	c.UpdatedAt = a.now()

	err := a.clientStore.Replace(ctx, c)
	a.record(ctx, "update_client", err)
	if err != nil {
		return models.Client{}, fmt.Errorf("update client: %w", err)
	}

	logger.Log.Info().Str("client_id", logger.HashID(c.ID)).Msg("Client updated")
	a.afterWrite(ctx, a.refreshClients)
	return c, nil
}

// DeleteClient removes a client. Its projects are kept and show as
// belonging to an unknown client.
func (a *App) DeleteClient(ctx context.Context, id string) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	err := a.clientStore.Remove(ctx, id)
	a.record(ctx, "delete_client", err)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}

	a.mu.RLock()
	orphaned := slices.ContainsFunc(a.projects, func(p models.Project) bool { return p.ClientID == id })
	a.mu.RUnlock()

	logger.Log.Info().
		Str("client_id", logger.HashID(id)).
		Bool("has_projects", orphaned).
		Msg("Client deleted")
	a.afterWrite(ctx, a.refreshClients)
	return nil
}

// UpdateCurrency persists and selects a new display currency.
func (a *App) UpdateCurrency(ctx context.Context, code models.Currency) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	err := a.currencyStore.Save(ctx, code)
	a.record(ctx, "update_currency", err)
	if err != nil {
		return fmt.Errorf("update currency: %w", err)
	}

	a.mu.Lock()
	a.currency = code
	a.mu.Unlock()

	logger.Log.Info().Str("currency", string(code)).Msg("Currency updated")
	return nil
}

// afterWrite refreshes the view from storage. A failed reload is logged
// because the write itself already succeeded.
func (a *App) afterWrite(ctx context.Context, reload func(context.Context) error) {
	if err := reload(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to refresh view after write")
	}
}
