package service

import (
	"context"
	"crypto/rand"
	"fmt"
)

// codigoAlfabeto is the charset for senha and saldo codes: uppercase letters
// and digits, 10 characters. Codes are unique across the whole code space of
// their kind (not per batch), enforced by a DB unique index; generation
// retries on collision.
const (
	codigoAlfabeto      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codigoTamanho       = 10
	codigoMaxTentativas = 20
)

// GerarCodigo returns one random 10-character uppercase-alphanumeric code.
func GerarCodigo() (string, error) {
	buf := make([]byte, codigoTamanho)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codigoAlfabeto[int(b)%len(codigoAlfabeto)]
	}
	return string(buf), nil
}

// GerarCodigoUnico generates codes until existe reports a free one.
// The unique index remains the real guarantee; the lookup only keeps the
// common path collision-free without burning a failed insert.
func GerarCodigoUnico(ctx context.Context, existe func(ctx context.Context, codigo string) (bool, error)) (string, error) {
	for i := 0; i < codigoMaxTentativas; i++ {
		codigo, err := GerarCodigo()
		if err != nil {
			return "", err
		}
		usado, err := existe(ctx, codigo)
		if err != nil {
			return "", err
		}
		if !usado {
			return codigo, nil
		}
	}
	return "", fmt.Errorf("gerar codigo: %d tentativas esgotadas", codigoMaxTentativas)
}
