package dashboard

import (
	"context"

	"github.com/it407/it-assets/internal/filter"
	"github.com/it407/it-assets/internal/store"
	"github.com/it407/it-assets/internal/views"
	"github.com/it407/it-assets/pkg/security"

	"go.uber.org/zap"
)

type DashboardService struct {
	tables    store.TableStore
	pipelines map[string]Pipeline
	logger    *zap.Logger
}

func NewDashboardService(tables store.TableStore, pipelines map[string]Pipeline, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		tables:    tables,
		pipelines: pipelines,
		logger:    logger,
	}
}

func (s *DashboardService) Pipeline(name string) (Pipeline, bool) {
	p, ok := s.pipelines[name]
	return p, ok
}

// Run reads fresh copies of the pipeline's tables, builds the view and keeps
// the rows matching the query. Rows dropped by joins are logged and kept on
// the view as diagnostics.
func (s *DashboardService) Run(ctx context.Context, principal security.Principal, p Pipeline, query Query) (views.View, error) {
	predicates, err := p.Filters(query)
	if err != nil {
		return views.View{}, err
	}

	tables, err := store.LoadAll(ctx, s.tables, p.Tables...)
	if err != nil {
		return views.View{}, err
	}

	view := p.Build(tables, principal)
	for _, d := range view.Diagnostics {
		s.logger.Warn("Row dropped from view",
			zap.String("view", d.View),
			zap.String("table", d.Table),
			zap.String("row_id", d.RowID),
			zap.String("key", d.Key),
			zap.String("value", d.Value),
			zap.String("reason", d.Reason),
		)
	}

	view.Rows = filter.Apply(view.Rows, predicates...)
	return view, nil
}
