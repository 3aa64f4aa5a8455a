package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dashboardCacheTTL = 60 * time.Second

// DashboardService aggregates the gerente home-screen numbers. Results are
// cached per empresa in redis for a short TTL; a cache failure degrades to
// recomputing, never to an error.
type DashboardService interface {
	Obter(ctx context.Context, empresaID uuid.UUID) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	clienteRepo repository.ClienteRepository
	senhasRepo  repository.RequisicaoSenhasRepository
	saldoRepo   repository.RequisicaoSaldoRepository
	rdb         *redis.Client
}

func NewDashboardService(
	clienteRepo repository.ClienteRepository,
	senhasRepo repository.RequisicaoSenhasRepository,
	saldoRepo repository.RequisicaoSaldoRepository,
	rdb *redis.Client,
) DashboardService {
	return &dashboardService{
		clienteRepo: clienteRepo,
		senhasRepo:  senhasRepo,
		saldoRepo:   saldoRepo,
		rdb:         rdb,
	}
}

func (s *dashboardService) Obter(ctx context.Context, empresaID uuid.UUID) (*dto.DashboardResponse, error) {
	cacheKey := "dashboard:" + empresaID.String()

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached dto.DashboardResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	resp := &dto.DashboardResponse{PorFormaPagamento: map[string]int64{}}
	var err error

	if resp.Clientes, err = s.clienteRepo.Count(ctx, empresaID); err != nil {
		return nil, err
	}
	if resp.RequisicoesSenhasAbertas, err = s.senhasRepo.CountAbertas(ctx, empresaID); err != nil {
		return nil, err
	}
	if resp.RequisicoesSaldoAbertas, err = s.saldoRepo.CountAbertas(ctx, empresaID); err != nil {
		return nil, err
	}
	if resp.SenhasPorUsar, err = s.senhasRepo.CountSenhasPorUsar(ctx, empresaID); err != nil {
		return nil, err
	}

	inicioMes := time.Now().UTC().AddDate(0, 0, 1-time.Now().UTC().Day()).Truncate(24 * time.Hour)
	if resp.MovimentosMes, resp.ValorMovimentosMes, err = s.saldoRepo.MovimentosDesde(ctx, empresaID, inicioMes); err != nil {
		return nil, err
	}

	porSenhas, err := s.senhasRepo.CountPorFormaPagamento(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	porSaldo, err := s.saldoRepo.CountPorFormaPagamento(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	for forma, n := range porSenhas {
		resp.PorFormaPagamento[forma] += n
	}
	for forma, n := range porSaldo {
		resp.PorFormaPagamento[forma] += n
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, raw, dashboardCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("empresa_id", empresaID.String()).Msg("dashboard: cache write failed")
			}
		}
	}

	return resp, nil
}
