package service

import (
	"context"

	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/model"
	"github.com/AyushManoj111/Engen/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FechoService is the closing engine. Fazer sweeps every open record of the
// empresa into one new immutable Fecho, atomically; Preview shows the same
// selection read-only.
type FechoService interface {
	Fazer(ctx context.Context, empresaID uuid.UUID) (*dto.FazerFechoResponse, error)
	Preview(ctx context.Context, empresaID uuid.UUID) (*dto.PreviewFechoResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID) (*dto.FechoListResponse, error)
}

type fechoService struct {
	repo       repository.FechoRepository
	senhasRepo repository.RequisicaoSenhasRepository
	saldoRepo  repository.RequisicaoSaldoRepository
}

func NewFechoService(
	repo repository.FechoRepository,
	senhasRepo repository.RequisicaoSenhasRepository,
	saldoRepo repository.RequisicaoSaldoRepository,
) FechoService {
	return &fechoService{repo: repo, senhasRepo: senhasRepo, saldoRepo: saldoRepo}
}

// ── Fazer ─────────────────────────────────────────────────────────────────────
// One transaction:
//  1. count open records across the four collections
//  2. zero → report "nothing to close", no writes
//  3. otherwise create the Fecho, then bulk-set fecho_id with the filters
//     re-evaluated in SQL (never a cached id list — see FechoRepository)
//  4. report per-collection counts from the updates themselves
//
// Any update failure rolls back the whole closing; no Fecho is left dangling.
// Calling Fazer twice with no new activity is a no-op the second time.

func (s *fechoService) Fazer(ctx context.Context, empresaID uuid.UUID) (*dto.FazerFechoResponse, error) {
	var resp dto.FazerFechoResponse

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		contagens, err := s.repo.ContarAbertosTx(tx, empresaID)
		if err != nil {
			return err
		}
		if contagens.Total() == 0 {
			resp.Mensagem = "nada para fechar"
			return nil
		}

		fecho := model.Fecho{EmpresaID: empresaID}
		if err := s.repo.CreateTx(tx, &fecho); err != nil {
			return err
		}

		if resp.Contagens.RequisicoesSenhas, err = s.repo.FecharRequisicoesSenhasTx(tx, empresaID, fecho.ID); err != nil {
			return err
		}
		if resp.Contagens.RequisicoesSaldo, err = s.repo.FecharRequisicoesSaldoTx(tx, empresaID, fecho.ID); err != nil {
			return err
		}
		if resp.Contagens.Movimentos, err = s.repo.FecharMovimentosTx(tx, empresaID, fecho.ID); err != nil {
			return err
		}
		if resp.Contagens.SenhasUsadas, err = s.repo.FecharSenhasTx(tx, empresaID, fecho.ID); err != nil {
			return err
		}

		id := fecho.ID.String()
		criado := fecho.CreatedAt.Format("2006-01-02T15:04:05Z")
		resp.FechoID = &id
		resp.CreatedAt = &criado
		resp.Mensagem = "fecho realizado"
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &resp, nil
}

// ── Preview ───────────────────────────────────────────────────────────────────
// Read-only: same selection as Fazer step 1, returning the candidate records
// and their value totals so the gerente can review before committing.

func (s *fechoService) Preview(ctx context.Context, empresaID uuid.UUID) (*dto.PreviewFechoResponse, error) {
	contagens, err := s.repo.ContarAbertos(ctx, empresaID)
	if err != nil {
		return nil, err
	}

	totalSenhas, err := s.senhasRepo.SumValorAbertas(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	totalSaldo, err := s.saldoRepo.SumValorAbertas(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	totalMovimentos, err := s.repo.SumMovimentosAbertos(ctx, empresaID)
	if err != nil {
		return nil, err
	}

	reqsSenhas, err := s.repo.ListRequisicoesSenhasAbertas(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	reqsSaldo, err := s.repo.ListRequisicoesSaldoAbertas(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	movimentos, err := s.repo.ListMovimentosAbertos(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	senhasUsadas, err := s.repo.ListSenhasUsadasAbertas(ctx, empresaID)
	if err != nil {
		return nil, err
	}

	resp := &dto.PreviewFechoResponse{
		Contagens:              contagens,
		TotalRequisicoesSenhas: totalSenhas,
		TotalRequisicoesSaldo:  totalSaldo,
		TotalMovimentos:        totalMovimentos,
		RequisicoesSenhas:      make([]dto.FechoRequisicaoSenhasItem, 0, len(reqsSenhas)),
		RequisicoesSaldo:       make([]dto.FechoRequisicaoSaldoItem, 0, len(reqsSaldo)),
		Movimentos:             make([]dto.FechoMovimentoItem, 0, len(movimentos)),
		SenhasUsadas:           make([]dto.FechoSenhaItem, 0, len(senhasUsadas)),
	}

	for i := range reqsSenhas {
		r := &reqsSenhas[i]
		item := dto.FechoRequisicaoSenhasItem{
			ID:         r.ID.String(),
			Valor:      r.Valor,
			Quantidade: r.Quantidade,
			CreatedAt:  r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if r.Cliente != nil {
			item.ClienteNome = r.Cliente.Nome
		}
		resp.RequisicoesSenhas = append(resp.RequisicoesSenhas, item)
	}
	for i := range reqsSaldo {
		r := &reqsSaldo[i]
		item := dto.FechoRequisicaoSaldoItem{
			ID:        r.ID.String(),
			Codigo:    r.Codigo,
			Valor:     r.Valor,
			CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if r.Cliente != nil {
			item.ClienteNome = r.Cliente.Nome
		}
		resp.RequisicoesSaldo = append(resp.RequisicoesSaldo, item)
	}
	for i := range movimentos {
		m := &movimentos[i]
		resp.Movimentos = append(resp.Movimentos, dto.FechoMovimentoItem{
			ID:        m.ID.String(),
			Descricao: m.Descricao,
			Valor:     m.Valor,
			CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	for i := range senhasUsadas {
		sn := &senhasUsadas[i]
		resp.SenhasUsadas = append(resp.SenhasUsadas, dto.FechoSenhaItem{
			Codigo:          sn.Codigo,
			DataUso:         sn.DataUso.Format("2006-01-02T15:04:05Z"),
			TipoCombustivel: sn.TipoCombustivel,
		})
	}
	return resp, nil
}

func (s *fechoService) Listar(ctx context.Context, empresaID uuid.UUID) (*dto.FechoListResponse, error) {
	fechos, err := s.repo.List(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	resp := &dto.FechoListResponse{Data: make([]dto.FechoListItem, 0, len(fechos))}
	for _, f := range fechos {
		resp.Data = append(resp.Data, dto.FechoListItem{
			ID:        f.ID.String(),
			CreatedAt: f.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return resp, nil
}
