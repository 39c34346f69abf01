package service

import (
	"context"
	"time"

	"eventops-service/internal/models"
	"eventops-service/internal/redisclient"
	"eventops-service/internal/store"
	"eventops-service/internal/util"

	"go.uber.org/zap"
)

// RegistryService handles the plain CRUD entities: guests and staff.
// These rows carry no cross-row invariants and mutate independently.
type RegistryService struct {
	store  *store.Store
	redis  *redisclient.Client
	logger *zap.Logger
}

// NewRegistryService creates a new registry service
func NewRegistryService(store *store.Store, redis *redisclient.Client) *RegistryService {
	return &RegistryService{
		store:  store,
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// PessoaRequest carries guest fields for create and update.
type PessoaRequest struct {
	Nome           string     `json:"nome" binding:"required"`
	Instagram      string     `json:"instagram"`
	CpfRg          string     `json:"cpf_rg"`
	DataNascimento *time.Time `json:"data_nascimento"`
	TipoIngresso   string     `json:"tipo_ingresso" binding:"required"`
	Observacao     string     `json:"observacao"`
}

func (r *PessoaRequest) validate() error {
	if !models.ValidTipoIngresso(r.TipoIngresso) {
		return NewValidationError("tipo_ingresso", "unknown ticket category")
	}
	return nil
}

// ListPessoas returns guests matching the optional search term.
func (s *RegistryService) ListPessoas(ctx context.Context, search string) ([]models.Pessoa, error) {
	return s.store.GetPessoas(ctx, search)
}

// CreatePessoa registers a guest.
func (s *RegistryService) CreatePessoa(ctx context.Context, req *PessoaRequest) (*models.Pessoa, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	pessoa := &models.Pessoa{
		Nome:           req.Nome,
		Instagram:      req.Instagram,
		CpfRg:          req.CpfRg,
		DataNascimento: req.DataNascimento,
		TipoIngresso:   req.TipoIngresso,
		Observacao:     req.Observacao,
	}
	if err := s.store.CreatePessoa(ctx, pessoa); err != nil {
		return nil, err
	}
	return pessoa, nil
}

// UpdatePessoa updates a guest.
func (s *RegistryService) UpdatePessoa(ctx context.Context, id int64, req *PessoaRequest) (*models.Pessoa, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	pessoa := &models.Pessoa{
		ID:             id,
		Nome:           req.Nome,
		Instagram:      req.Instagram,
		CpfRg:          req.CpfRg,
		DataNascimento: req.DataNascimento,
		TipoIngresso:   req.TipoIngresso,
		Observacao:     req.Observacao,
	}
	if err := s.store.UpdatePessoa(ctx, pessoa); err != nil {
		return nil, err
	}
	return s.store.GetPessoaByID(ctx, id)
}

// DeletePessoa removes a guest. Their past bar sales survive with the
// buyer reference cleared.
func (s *RegistryService) DeletePessoa(ctx context.Context, id int64) error {
	if err := s.store.DeletePessoa(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

// ColaboradorRequest carries staff fields for create and update.
type ColaboradorRequest struct {
	Nome     string `json:"nome" binding:"required"`
	Cargo    string `json:"cargo" binding:"required"`
	Telefone string `json:"telefone"`
	Ativo    *bool  `json:"ativo"`
}

func (r *ColaboradorRequest) validate() error {
	if !models.ValidCargo(r.Cargo) {
		return NewValidationError("cargo", "unknown role")
	}
	return nil
}

// ListColaboradores returns staff matching the optional filters.
func (s *RegistryService) ListColaboradores(ctx context.Context, search, cargo string) ([]models.Colaborador, error) {
	if cargo != "" && cargo != "todos" && !models.ValidCargo(cargo) {
		return nil, NewValidationError("cargo", "unknown role")
	}
	return s.store.GetColaboradores(ctx, search, cargo)
}

// CreateColaborador adds a staff member. Ativo defaults to true.
func (s *RegistryService) CreateColaborador(ctx context.Context, req *ColaboradorRequest) (*models.Colaborador, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	ativo := true
	if req.Ativo != nil {
		ativo = *req.Ativo
	}
	colaborador := &models.Colaborador{
		Nome:     req.Nome,
		Cargo:    req.Cargo,
		Telefone: req.Telefone,
		Ativo:    ativo,
	}
	if err := s.store.CreateColaborador(ctx, colaborador); err != nil {
		return nil, err
	}
	return colaborador, nil
}

// UpdateColaborador updates a staff member.
func (s *RegistryService) UpdateColaborador(ctx context.Context, id int64, req *ColaboradorRequest) (*models.Colaborador, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.GetColaboradorByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Nome = req.Nome
	existing.Cargo = req.Cargo
	existing.Telefone = req.Telefone
	if req.Ativo != nil {
		existing.Ativo = *req.Ativo
	}
	if err := s.store.UpdateColaborador(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteColaborador removes a staff member.
func (s *RegistryService) DeleteColaborador(ctx context.Context, id int64) error {
	return s.store.DeleteColaborador(ctx, id)
}

func (s *RegistryService) invalidateDashboard(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.InvalidateDashboard(ctx); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", zap.Error(err))
	}
}
