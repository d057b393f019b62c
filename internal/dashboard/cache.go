package dashboard

import (
	"context"
	"fmt"

	"github.com/graph-gophers/dataloader"

	"github.com/gjrich/cintel-04-local/internal/domain"
	"github.com/gjrich/cintel-04-local/internal/filter"
)

// selectionKey adapts a Selection to the dataloader key interface so
// filter results are cached by selection fingerprint.
type selectionKey struct {
	selection domain.Selection
}

func (k selectionKey) String() string { return k.selection.Fingerprint() }

func (k selectionKey) Raw() interface{} { return k.selection }

// resultCache memoizes filter results per selection
// fingerprint. Repeating a selection the user already explored skips
// the dataset scan entirely.
type resultCache struct {
	loader *dataloader.Loader
}

func newResultCache(dataset domain.Dataset) *resultCache {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		results := make([]*dataloader.Result, len(keys))
		for i, key := range keys {
			selection, ok := key.Raw().(domain.Selection)
			if !ok {
				results[i] = &dataloader.Result{Error: fmt.Errorf("unexpected cache key %T", key.Raw())}
				continue
			}
			results[i] = &dataloader.Result{Data: filter.Apply(dataset, selection)}
		}
		return results
	}
	return &resultCache{loader: dataloader.NewBatchedLoader(batchFn)}
}

// Filtered returns the filtered dataset for the selection, computing
// it at most once per fingerprint.
func (c *resultCache) Filtered(ctx context.Context, selection domain.Selection) (domain.Dataset, error) {
	thunk := c.loader.Load(ctx, selectionKey{selection: selection})
	data, err := thunk()
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("load filtered dataset: %w", err)
	}
	dataset, ok := data.(domain.Dataset)
	if !ok {
		return domain.Dataset{}, fmt.Errorf("unexpected cache value %T", data)
	}
	return dataset, nil
}
