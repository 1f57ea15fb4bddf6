package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"order-intake/internal/catalog"
	"order-intake/internal/order/model"
)

// Intake is the full order pipeline after extraction: validation plus
// consolidation lookup against pending shipments.
type Intake struct {
	Validator              *Validator
	Pending                []model.PendingShipment
	ConsolidationThreshold int
}

// Process validates o and attaches consolidation suggestions for its address.
func (in *Intake) Process(o model.Order, idx *catalog.Index) (model.OrderResult, error) {
	res, err := in.Validator.Validate(o, idx)
	if err != nil {
		return model.OrderResult{}, err
	}
	res.Consolidation = FindConsolidation(res.DeliveryAddress, in.Pending, in.ConsolidationThreshold)
	return res, nil
}

// BatchItem is the outcome of one order in a batch.
type BatchItem struct {
	Result model.OrderResult
	Err    error
}

// ProcessBatch runs Process for every order on at most workers goroutines,
// all reading the same idx. Per-order errors land in the item; the returned
// error is only ctx's.
func (in *Intake) ProcessBatch(ctx context.Context, orders []model.Order, idx *catalog.Index, workers int) ([]BatchItem, error) {
	items := make([]BatchItem, len(orders))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, o := range orders {
		i, o := i, o
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := in.Process(o, idx)
			items[i] = BatchItem{Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
