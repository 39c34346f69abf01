package service

import (
	"context"

	"eventops-service/internal/models"
	"eventops-service/internal/redisclient"
	"eventops-service/internal/store"
	"eventops-service/internal/util"

	"go.uber.org/zap"
)

// TableService handles VIP tables, their membership and bottle lists.
type TableService struct {
	store  *store.Store
	redis  *redisclient.Client
	logger *zap.Logger
}

// NewTableService creates a new table service
func NewTableService(store *store.Store, redis *redisclient.Client) *TableService {
	return &TableService{
		store:  store,
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// MesaRequest carries table fields for create and update.
type MesaRequest struct {
	Nome     string   `json:"nome" binding:"required"`
	Garcom   string   `json:"garcom"`
	Garrafas []string `json:"garrafas"`
}

// List returns all tables with members loaded.
func (s *TableService) List(ctx context.Context) ([]models.MesaCamarote, error) {
	return s.store.GetMesas(ctx)
}

// Get returns one table with members loaded.
func (s *TableService) Get(ctx context.Context, id int64) (*models.MesaCamarote, error) {
	return s.store.GetMesaByID(ctx, id)
}

// Create adds a table with an empty bottle list.
func (s *TableService) Create(ctx context.Context, req *MesaRequest) (*models.MesaCamarote, error) {
	mesa := &models.MesaCamarote{
		Nome:   req.Nome,
		Garcom: req.Garcom,
	}
	if err := s.store.CreateMesa(ctx, mesa); err != nil {
		return nil, err
	}
	return mesa, nil
}

// Update edits a table. A nil bottle list keeps the stored one.
func (s *TableService) Update(ctx context.Context, id int64, req *MesaRequest) (*models.MesaCamarote, error) {
	existing, err := s.store.GetMesaByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Nome = req.Nome
	existing.Garcom = req.Garcom
	if req.Garrafas != nil {
		existing.Garrafas = req.Garrafas
	}
	if err := s.store.UpdateMesa(ctx, existing); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	return s.store.GetMesaByID(ctx, id)
}

// Delete removes a table and its memberships.
func (s *TableService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteMesa(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

// AddPessoa attaches a guest to a table and returns the refreshed table.
func (s *TableService) AddPessoa(ctx context.Context, mesaID, pessoaID int64) (*models.MesaCamarote, error) {
	if err := s.store.AddMesaPessoa(ctx, mesaID, pessoaID); err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)
	return s.store.GetMesaByID(ctx, mesaID)
}

// RemovePessoa detaches a guest from a table and returns the refreshed
// table.
func (s *TableService) RemovePessoa(ctx context.Context, mesaID, pessoaID int64) (*models.MesaCamarote, error) {
	if err := s.store.RemoveMesaPessoa(ctx, mesaID, pessoaID); err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)
	return s.store.GetMesaByID(ctx, mesaID)
}

// AddGarrafa appends a bottle label to a table's list.
func (s *TableService) AddGarrafa(ctx context.Context, mesaID int64, garrafa string) (*models.MesaCamarote, error) {
	if garrafa == "" {
		return nil, NewValidationError("garrafa", "must not be empty")
	}

	mesa, err := s.store.AddGarrafa(ctx, mesaID, garrafa)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Bottle added",
		zap.Int64("mesa_id", mesaID),
		zap.String("garrafa", garrafa))
	s.invalidateDashboard(ctx)
	return mesa, nil
}

func (s *TableService) invalidateDashboard(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", zap.Error(err))
	}
}
