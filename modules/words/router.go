package words

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/progenglish/handler"
	"github.com/dmitrymomot/progenglish/pkg/binder"
	"github.com/dmitrymomot/progenglish/svc/word"
)

// Module serves the vocabulary endpoints.
type Module struct {
	words       word.Service
	requireAuth func(http.Handler) http.Handler
	translator  *handler.ErrorTranslator
}

// NewModule creates the words module. requireAuth gates the write endpoints.
func NewModule(words word.Service, requireAuth func(http.Handler) http.Handler, t *handler.ErrorTranslator) *Module {
	return &Module{words: words, requireAuth: requireAuth, translator: t}
}

// Handle returns the router mounted at /api/v1/words.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", wrap(m, m.list, binder.Query()))
	r.Get("/random", wrap(m, m.random))
	r.Get("/category/{category}", wrap(m, m.byCategory, binder.Path(chi.URLParam), binder.Query()))
	r.Get("/difficulty/{difficulty}", wrap(m, m.byDifficulty, binder.Path(chi.URLParam), binder.Query()))
	r.Get("/{id}", wrap(m, m.get, binder.Path(chi.URLParam)))

	r.Group(func(r chi.Router) {
		if m.requireAuth != nil {
			r.Use(m.requireAuth)
		}
		r.Post("/", wrap(m, m.create, binder.JSON()))
		r.Put("/{id}", wrap(m, m.update, binder.Path(chi.URLParam), binder.JSON()))
		r.Delete("/{id}", wrap(m, m.delete, binder.Path(chi.URLParam)))
	})

	return r
}

// Legacy returns the router mounted at /api serving the built-in samples.
func (m *Module) Legacy() http.Handler {
	r := chi.NewRouter()
	r.Get("/words", wrap(m, samples))
	r.Get("/random-word", wrap(m, randomSample))
	return r
}

func wrap[R any](m *Module, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](m.translator.Handle),
	)
}

func (m *Module) list(ctx handler.Context, q pageQuery) handler.Response {
	page, size := q.values()
	items, total, err := m.words.List(ctx, page, size)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Paginated(items, total, page, size)
}

func (m *Module) byCategory(ctx handler.Context, req categoryRequest) handler.Response {
	page, size := pageQuery{Page: req.Page, Size: req.Size}.values()
	items, total, err := m.words.ListByCategory(ctx, req.Category, page, size)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Paginated(items, total, page, size)
}

func (m *Module) byDifficulty(ctx handler.Context, req difficultyRequest) handler.Response {
	page, size := pageQuery{Page: req.Page, Size: req.Size}.values()
	items, total, err := m.words.ListByDifficulty(ctx, req.Difficulty, page, size)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Paginated(items, total, page, size)
}

func (m *Module) get(ctx handler.Context, req idPath) handler.Response {
	w, err := m.words.Get(ctx, req.ID)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Success(w)
}

func (m *Module) random(ctx handler.Context, _ struct{}) handler.Response {
	w, err := m.words.Random(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Success(w)
}

func (m *Module) create(ctx handler.Context, req createRequest) handler.Response {
	w, err := m.words.Create(ctx, req.input())
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Created(w)
}

func (m *Module) update(ctx handler.Context, req updateRequest) handler.Response {
	w, err := m.words.Update(ctx, req.ID, req.input())
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Updated(w)
}

func (m *Module) delete(ctx handler.Context, req idPath) handler.Response {
	if err := m.words.Delete(ctx, req.ID); err != nil {
		return handler.Fail(err)
	}
	return handler.Deleted()
}

func samples(handler.Context, struct{}) handler.Response {
	return handler.Success(word.Samples())
}

func randomSample(handler.Context, struct{}) handler.Response {
	return handler.Success(word.RandomSample())
}
