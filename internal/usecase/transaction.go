package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Transaction executa passos em ordem; se um falhar, compensa os anteriores em ordem reversa.
type Transaction struct {
	operations []Operation
}

type Operation struct {
	Name       string
	Fn         func(context.Context) error
	Compensate func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{operations: []Operation{}}
}

// AddOperation registra o passo e sua compensação (nil se não houver o que desfazer).
func (t *Transaction) AddOperation(name string, fn, compensate func(context.Context) error) {
	t.operations = append(t.operations, Operation{Name: name, Fn: fn, Compensate: compensate})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", op.Name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) {
	for i := failedAtIndex - 1; i >= 0; i-- {
		comp := t.operations[i]
		if comp.Compensate == nil {
			continue
		}
		if err := comp.Compensate(ctx); err != nil {
			logrus.WithFields(logrus.Fields{
				"operation": comp.Name,
				"error":     err,
			}).Warn("⚠️ Compensação falhou (risco de inconsistência!)")
		}
	}
}
