package service

// fakes_test.go — in-memory repository stubs shared by the service tests.
// runTx passes a nil *gorm.DB straight through, so the stubs can ignore the
// tx handle entirely and back every method with plain maps.

import (
	"context"
	"errors"
	"time"

	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/model"
	"github.com/AyushManoj111/Engen/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Cliente ───────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now().UTC()
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, empresaID, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok || c.EmpresaID != empresaID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context, empresaID uuid.UUID) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if c.EmpresaID == empresaID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, empresaID, id uuid.UUID) error {
	c, ok := r.clientes[id]
	if !ok || c.EmpresaID != empresaID {
		return gorm.ErrRecordNotFound
	}
	delete(r.clientes, id)
	return nil
}

func (r *stubClienteRepo) Count(_ context.Context, empresaID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range r.clientes {
		if c.EmpresaID == empresaID {
			n++
		}
	}
	return n, nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── RequisicaoSenhas ──────────────────────────────────────────────────────────

type stubSenhasRepo struct {
	reqs   map[uuid.UUID]*model.RequisicaoSenhas
	senhas map[string]*model.Senha // by codigo
}

func newStubSenhasRepo() *stubSenhasRepo {
	return &stubSenhasRepo{
		reqs:   make(map[uuid.UUID]*model.RequisicaoSenhas),
		senhas: make(map[string]*model.Senha),
	}
}

func (r *stubSenhasRepo) DB() *gorm.DB { return nil }

func (r *stubSenhasRepo) CreateTx(_ *gorm.DB, req *model.RequisicaoSenhas) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.CreatedAt = time.Now().UTC()
	r.reqs[req.ID] = req
	return nil
}

func (r *stubSenhasRepo) CreateSenhasTx(_ *gorm.DB, senhas []model.Senha) error {
	for i := range senhas {
		s := senhas[i]
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		if _, dup := r.senhas[s.Codigo]; dup {
			return errors.New("duplicate codigo")
		}
		r.senhas[s.Codigo] = &s
	}
	return nil
}

func (r *stubSenhasRepo) FindByID(_ context.Context, empresaID, id uuid.UUID) (*model.RequisicaoSenhas, error) {
	req, ok := r.reqs[id]
	if !ok || req.EmpresaID != empresaID {
		return nil, gorm.ErrRecordNotFound
	}
	return req, nil
}

func (r *stubSenhasRepo) Update(_ context.Context, req *model.RequisicaoSenhas) error {
	r.reqs[req.ID] = req
	return nil
}

func (r *stubSenhasRepo) UpdateTx(_ *gorm.DB, req *model.RequisicaoSenhas) error {
	r.reqs[req.ID] = req
	return nil
}

func (r *stubSenhasRepo) List(_ context.Context, empresaID uuid.UUID, filter dto.RequisicaoFilter) ([]model.RequisicaoSenhas, int64, error) {
	var out []model.RequisicaoSenhas
	for _, req := range r.reqs {
		if req.EmpresaID != empresaID || req.Estado != model.EstadoAtivo {
			continue
		}
		if filter.ClienteID != "" && req.ClienteID.String() != filter.ClienteID {
			continue
		}
		switch filter.Fecho {
		case "aberto":
			if req.FechoID != nil {
				continue
			}
		case "fechado":
			if req.FechoID == nil {
				continue
			}
		}
		out = append(out, *req)
	}
	return out, int64(len(out)), nil
}

func (r *stubSenhasRepo) CodigoSenhaExiste(_ context.Context, codigo string) (bool, error) {
	_, ok := r.senhas[codigo]
	return ok, nil
}

func (r *stubSenhasRepo) findSenha(empresaID uuid.UUID, codigo string) (*model.Senha, error) {
	s, ok := r.senhas[codigo]
	if !ok || s.EmpresaID != empresaID {
		return nil, gorm.ErrRecordNotFound
	}
	if s.Requisicao == nil {
		s.Requisicao = r.reqs[s.RequisicaoID]
	}
	return s, nil
}

func (r *stubSenhasRepo) FindSenhaByCodigo(_ context.Context, empresaID uuid.UUID, codigo string) (*model.Senha, error) {
	return r.findSenha(empresaID, codigo)
}

func (r *stubSenhasRepo) FindSenhaByCodigoTx(_ *gorm.DB, empresaID uuid.UUID, codigo string) (*model.Senha, error) {
	return r.findSenha(empresaID, codigo)
}

func (r *stubSenhasRepo) UpdateSenhaTx(_ *gorm.DB, s *model.Senha) error {
	r.senhas[s.Codigo] = s
	return nil
}

func (r *stubSenhasRepo) countNaoUsadas(requisicaoID uuid.UUID) int64 {
	var n int64
	for _, s := range r.senhas {
		if s.RequisicaoID == requisicaoID && !s.Usada {
			n++
		}
	}
	return n
}

func (r *stubSenhasRepo) CountSenhasNaoUsadasTx(_ *gorm.DB, requisicaoID uuid.UUID) (int64, error) {
	return r.countNaoUsadas(requisicaoID), nil
}

func (r *stubSenhasRepo) CountSenhasNaoUsadas(_ context.Context, requisicaoID uuid.UUID) (int64, error) {
	return r.countNaoUsadas(requisicaoID), nil
}

func (r *stubSenhasRepo) ListSenhas(_ context.Context, empresaID, requisicaoID uuid.UUID) ([]model.Senha, error) {
	var out []model.Senha
	for _, s := range r.senhas {
		if s.EmpresaID == empresaID && s.RequisicaoID == requisicaoID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSenhasRepo) ListFechadasPorCliente(_ context.Context, empresaID, clienteID uuid.UUID) ([]model.RequisicaoSenhas, error) {
	var out []model.RequisicaoSenhas
	for _, req := range r.reqs {
		if req.EmpresaID == empresaID && req.ClienteID == clienteID && req.FechoID != nil {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *stubSenhasRepo) ListSenhasUsadasFechadasPorCliente(_ context.Context, empresaID, clienteID uuid.UUID) ([]model.Senha, error) {
	var out []model.Senha
	for _, s := range r.senhas {
		if s.EmpresaID == empresaID && s.ClienteID == clienteID && s.Usada && s.DataUso != nil && s.FechoID != nil {
			cp := *s
			if cp.Requisicao == nil {
				cp.Requisicao = r.reqs[cp.RequisicaoID]
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *stubSenhasRepo) CountAtivasPorCliente(_ context.Context, empresaID, clienteID uuid.UUID) (int64, error) {
	var n int64
	for _, req := range r.reqs {
		if req.EmpresaID == empresaID && req.ClienteID == clienteID && req.Estado == model.EstadoAtivo {
			n++
		}
	}
	return n, nil
}

func (r *stubSenhasRepo) CountPendentesPorCliente(_ context.Context, empresaID, clienteID uuid.UUID) (int64, error) {
	var n int64
	for _, req := range r.reqs {
		if req.EmpresaID == empresaID && req.ClienteID == clienteID && req.Estado == model.EstadoAtivo && req.FechoID == nil {
			n++
		}
	}
	return n, nil
}

func (r *stubSenhasRepo) CountSenhasUsadasPendentesPorCliente(_ context.Context, empresaID, clienteID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.senhas {
		if s.EmpresaID == empresaID && s.ClienteID == clienteID && s.Usada && s.DataUso != nil && s.FechoID == nil {
			n++
		}
	}
	return n, nil
}

func (r *stubSenhasRepo) CountAbertas(_ context.Context, empresaID uuid.UUID) (int64, error) {
	var n int64
	for _, req := range r.reqs {
		if req.EmpresaID == empresaID && req.Estado == model.EstadoAtivo && req.FechoID == nil {
			n++
		}
	}
	return n, nil
}

func (r *stubSenhasRepo) CountSenhasPorUsar(_ context.Context, empresaID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.senhas {
		if s.EmpresaID == empresaID && !s.Usada {
			n++
		}
	}
	return n, nil
}

func (r *stubSenhasRepo) CountPorFormaPagamento(_ context.Context, empresaID uuid.UUID) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, req := range r.reqs {
		if req.EmpresaID == empresaID && req.Estado == model.EstadoAtivo {
			out[req.FormaPagamento]++
		}
	}
	return out, nil
}

func (r *stubSenhasRepo) SumValorAbertas(_ context.Context, empresaID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, req := range r.reqs {
		if req.EmpresaID == empresaID && req.Estado == model.EstadoAtivo && req.FechoID == nil {
			total = total.Add(req.Valor)
		}
	}
	return total, nil
}

var _ repository.RequisicaoSenhasRepository = (*stubSenhasRepo)(nil)

// ── RequisicaoSaldo ───────────────────────────────────────────────────────────

type stubSaldoRepo struct {
	reqs       map[uuid.UUID]*model.RequisicaoSaldo
	movimentos []*model.Movimento
}

func newStubSaldoRepo() *stubSaldoRepo {
	return &stubSaldoRepo{reqs: make(map[uuid.UUID]*model.RequisicaoSaldo)}
}

func (r *stubSaldoRepo) DB() *gorm.DB { return nil }

func (r *stubSaldoRepo) Create(_ context.Context, req *model.RequisicaoSaldo) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.CreatedAt = time.Now().UTC()
	r.reqs[req.ID] = req
	return nil
}

func (r *stubSaldoRepo) FindByID(_ context.Context, empresaID, id uuid.UUID) (*model.RequisicaoSaldo, error) {
	req, ok := r.reqs[id]
	if !ok || req.EmpresaID != empresaID {
		return nil, gorm.ErrRecordNotFound
	}
	return req, nil
}

func (r *stubSaldoRepo) FindByCodigo(_ context.Context, empresaID uuid.UUID, codigo string) (*model.RequisicaoSaldo, error) {
	for _, req := range r.reqs {
		if req.EmpresaID == empresaID && req.Codigo == codigo && req.Estado == model.EstadoAtivo {
			return req, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaldoRepo) Update(_ context.Context, req *model.RequisicaoSaldo) error {
	r.reqs[req.ID] = req
	return nil
}

func (r *stubSaldoRepo) List(_ context.Context, empresaID uuid.UUID, filter dto.RequisicaoFilter) ([]model.RequisicaoSaldo, int64, error) {
	var out []model.RequisicaoSaldo
	for _, req := range r.reqs {
		if req.EmpresaID != empresaID || req.Estado != model.EstadoAtivo {
			continue
		}
		if filter.ClienteID != "" && req.ClienteID.String() != filter.ClienteID {
			continue
		}
		switch filter.Fecho {
		case "aberto":
			if req.FechoID != nil {
				continue
			}
		case "fechado":
			if req.FechoID == nil {
				continue
			}
		}
		out = append(out, *req)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaldoRepo) CodigoExiste(_ context.Context, codigo string) (bool, error) {
	for _, req := range r.reqs {
		if req.Codigo == codigo {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSaldoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.RequisicaoSaldo, error) {
	req, ok := r.reqs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return req, nil
}

func (r *stubSaldoRepo) sumMovimentos(requisicaoID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, m := range r.movimentos {
		if m.RequisicaoSaldoID == requisicaoID {
			total = total.Add(m.Valor)
		}
	}
	return total
}

func (r *stubSaldoRepo) SumMovimentosTx(_ *gorm.DB, requisicaoID uuid.UUID) (decimal.Decimal, error) {
	return r.sumMovimentos(requisicaoID), nil
}

func (r *stubSaldoRepo) SumMovimentos(_ context.Context, requisicaoID uuid.UUID) (decimal.Decimal, error) {
	return r.sumMovimentos(requisicaoID), nil
}

func (r *stubSaldoRepo) CreateMovimentoTx(_ *gorm.DB, m *model.Movimento) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now().UTC()
	r.movimentos = append(r.movimentos, m)
	return nil
}

func (r *stubSaldoRepo) ListMovimentos(_ context.Context, requisicaoID uuid.UUID) ([]model.Movimento, error) {
	var out []model.Movimento
	for _, m := range r.movimentos {
		if m.RequisicaoSaldoID == requisicaoID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubSaldoRepo) ListFechadasPorCliente(_ context.Context, empresaID, clienteID uuid.UUID) ([]model.RequisicaoSaldo, error) {
	var out []model.RequisicaoSaldo
	for _, req := range r.reqs {
		if req.EmpresaID == empresaID && req.ClienteID == clienteID && req.FechoID != nil {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *stubSaldoRepo) ListMovimentosFechadosPorCliente(_ context.Context, empresaID, clienteID uuid.UUID) ([]model.Movimento, error) {
	var out []model.Movimento
	for _, m := range r.movimentos {
		if m.FechoID == nil {
			continue
		}
		req, ok := r.reqs[m.RequisicaoSaldoID]
		if ok && req.EmpresaID == empresaID && req.ClienteID == clienteID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubSaldoRepo) CountAtivasPorCliente(_ context.Context, empresaID, clienteID uuid.UUID) (int64, error) {
	var n int64
	for _, req := range r.reqs {
		if req.EmpresaID == empresaID && req.ClienteID == clienteID && req.Estado == model.EstadoAtivo {
			n++
		}
	}
	return n, nil
}

func (r *stubSaldoRepo) CountPendentesPorCliente(_ context.Context, empresaID, clienteID uuid.UUID) (int64, error) {
	var n int64
	for _, req := range r.reqs {
		if req.EmpresaID == empresaID && req.ClienteID == clienteID && req.Estado == model.EstadoAtivo && req.FechoID == nil {
			n++
		}
	}
	return n, nil
}

func (r *stubSaldoRepo) CountMovimentosPendentesPorCliente(_ context.Context, empresaID, clienteID uuid.UUID) (int64, error) {
	var n int64
	for _, m := range r.movimentos {
		if m.FechoID != nil {
			continue
		}
		req, ok := r.reqs[m.RequisicaoSaldoID]
		if ok && req.EmpresaID == empresaID && req.ClienteID == clienteID {
			n++
		}
	}
	return n, nil
}

func (r *stubSaldoRepo) CountAbertas(_ context.Context, empresaID uuid.UUID) (int64, error) {
	var n int64
	for _, req := range r.reqs {
		if req.EmpresaID == empresaID && req.Estado == model.EstadoAtivo && req.FechoID == nil {
			n++
		}
	}
	return n, nil
}

func (r *stubSaldoRepo) MovimentosDesde(_ context.Context, empresaID uuid.UUID, desde time.Time) (int64, decimal.Decimal, error) {
	var n int64
	total := decimal.Zero
	for _, m := range r.movimentos {
		req, ok := r.reqs[m.RequisicaoSaldoID]
		if !ok || req.EmpresaID != empresaID || m.CreatedAt.Before(desde) {
			continue
		}
		n++
		total = total.Add(m.Valor)
	}
	return n, total, nil
}

func (r *stubSaldoRepo) CountPorFormaPagamento(_ context.Context, empresaID uuid.UUID) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, req := range r.reqs {
		if req.EmpresaID == empresaID && req.Estado == model.EstadoAtivo {
			out[req.FormaPagamento]++
		}
	}
	return out, nil
}

func (r *stubSaldoRepo) SumValorAbertas(_ context.Context, empresaID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, req := range r.reqs {
		if req.EmpresaID == empresaID && req.Estado == model.EstadoAtivo && req.FechoID == nil {
			total = total.Add(req.Valor)
		}
	}
	return total, nil
}

var _ repository.RequisicaoSaldoRepository = (*stubSaldoRepo)(nil)

// ── Fecho ─────────────────────────────────────────────────────────────────────

// stubFechoRepo sweeps over the senhas and saldo stubs so tests observe the
// same records the other services see.
type stubFechoRepo struct {
	senhas *stubSenhasRepo
	saldo  *stubSaldoRepo
	fechos []*model.Fecho
}

func newStubFechoRepo(senhas *stubSenhasRepo, saldo *stubSaldoRepo) *stubFechoRepo {
	return &stubFechoRepo{senhas: senhas, saldo: saldo}
}

func (r *stubFechoRepo) DB() *gorm.DB { return nil }

func (r *stubFechoRepo) CreateTx(_ *gorm.DB, f *model.Fecho) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = time.Now().UTC()
	r.fechos = append(r.fechos, f)
	return nil
}

func (r *stubFechoRepo) contar(empresaID uuid.UUID) dto.FechoContagens {
	var c dto.FechoContagens
	for _, req := range r.senhas.reqs {
		if req.EmpresaID == empresaID && req.Estado == model.EstadoAtivo && req.FechoID == nil {
			c.RequisicoesSenhas++
		}
	}
	for _, req := range r.saldo.reqs {
		if req.EmpresaID == empresaID && req.Estado == model.EstadoAtivo && req.FechoID == nil {
			c.RequisicoesSaldo++
		}
	}
	for _, m := range r.saldo.movimentos {
		req, ok := r.saldo.reqs[m.RequisicaoSaldoID]
		if ok && req.EmpresaID == empresaID && m.FechoID == nil {
			c.Movimentos++
		}
	}
	for _, s := range r.senhas.senhas {
		if s.EmpresaID == empresaID && s.Usada && s.DataUso != nil && s.FechoID == nil {
			c.SenhasUsadas++
		}
	}
	return c
}

func (r *stubFechoRepo) ContarAbertosTx(_ *gorm.DB, empresaID uuid.UUID) (dto.FechoContagens, error) {
	return r.contar(empresaID), nil
}

func (r *stubFechoRepo) ContarAbertos(_ context.Context, empresaID uuid.UUID) (dto.FechoContagens, error) {
	return r.contar(empresaID), nil
}

func (r *stubFechoRepo) FecharRequisicoesSenhasTx(_ *gorm.DB, empresaID, fechoID uuid.UUID) (int64, error) {
	var n int64
	for _, req := range r.senhas.reqs {
		if req.EmpresaID == empresaID && req.Estado == model.EstadoAtivo && req.FechoID == nil {
			id := fechoID
			req.FechoID = &id
			n++
		}
	}
	return n, nil
}

func (r *stubFechoRepo) FecharRequisicoesSaldoTx(_ *gorm.DB, empresaID, fechoID uuid.UUID) (int64, error) {
	var n int64
	for _, req := range r.saldo.reqs {
		if req.EmpresaID == empresaID && req.Estado == model.EstadoAtivo && req.FechoID == nil {
			id := fechoID
			req.FechoID = &id
			n++
		}
	}
	return n, nil
}

func (r *stubFechoRepo) FecharMovimentosTx(_ *gorm.DB, empresaID, fechoID uuid.UUID) (int64, error) {
	var n int64
	for _, m := range r.saldo.movimentos {
		req, ok := r.saldo.reqs[m.RequisicaoSaldoID]
		if ok && req.EmpresaID == empresaID && m.FechoID == nil {
			id := fechoID
			m.FechoID = &id
			n++
		}
	}
	return n, nil
}

func (r *stubFechoRepo) FecharSenhasTx(_ *gorm.DB, empresaID, fechoID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.senhas.senhas {
		if s.EmpresaID == empresaID && s.Usada && s.DataUso != nil && s.FechoID == nil {
			id := fechoID
			s.FechoID = &id
			n++
		}
	}
	return n, nil
}

func (r *stubFechoRepo) SumMovimentosAbertos(_ context.Context, empresaID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.saldo.movimentos {
		req, ok := r.saldo.reqs[m.RequisicaoSaldoID]
		if ok && req.EmpresaID == empresaID && m.FechoID == nil {
			total = total.Add(m.Valor)
		}
	}
	return total, nil
}

func (r *stubFechoRepo) ListRequisicoesSenhasAbertas(_ context.Context, empresaID uuid.UUID) ([]model.RequisicaoSenhas, error) {
	var out []model.RequisicaoSenhas
	for _, req := range r.senhas.reqs {
		if req.EmpresaID == empresaID && req.Estado == model.EstadoAtivo && req.FechoID == nil {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *stubFechoRepo) ListRequisicoesSaldoAbertas(_ context.Context, empresaID uuid.UUID) ([]model.RequisicaoSaldo, error) {
	var out []model.RequisicaoSaldo
	for _, req := range r.saldo.reqs {
		if req.EmpresaID == empresaID && req.Estado == model.EstadoAtivo && req.FechoID == nil {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *stubFechoRepo) ListMovimentosAbertos(_ context.Context, empresaID uuid.UUID) ([]model.Movimento, error) {
	var out []model.Movimento
	for _, m := range r.saldo.movimentos {
		req, ok := r.saldo.reqs[m.RequisicaoSaldoID]
		if ok && req.EmpresaID == empresaID && m.FechoID == nil {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubFechoRepo) ListSenhasUsadasAbertas(_ context.Context, empresaID uuid.UUID) ([]model.Senha, error) {
	var out []model.Senha
	for _, s := range r.senhas.senhas {
		if s.EmpresaID == empresaID && s.Usada && s.DataUso != nil && s.FechoID == nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubFechoRepo) List(_ context.Context, empresaID uuid.UUID) ([]model.Fecho, error) {
	var out []model.Fecho
	for _, f := range r.fechos {
		if f.EmpresaID == empresaID {
			out = append(out, *f)
		}
	}
	return out, nil
}

var _ repository.FechoRepository = (*stubFechoRepo)(nil)
