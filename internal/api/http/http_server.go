package http

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/olyamironova/exchange-aggregator/internal/api/dto"
	"github.com/olyamironova/exchange-aggregator/internal/core"
	"github.com/olyamironova/exchange-aggregator/internal/domain"
	"github.com/olyamironova/exchange-aggregator/internal/middleware"
	"github.com/olyamironova/exchange-aggregator/internal/port"
	"github.com/olyamironova/exchange-aggregator/internal/provider/fake"
)

// HTTPServer is the REST surface over the aggregator. Registered providers
// created through it are simulated ones; real connectors are wired at
// construction time, not over HTTP.
type HTTPServer struct {
	agg         *core.Aggregator
	ids         port.IDGenerator
	repo        port.Repository
	log         *zap.Logger
	rateLimit   time.Duration
	submittedID sync.Map // request-id deduplication for buys
}

func NewHTTPServer(agg *core.Aggregator, ids port.IDGenerator, repo port.Repository, logger *zap.Logger, rateLimit time.Duration) *HTTPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPServer{agg: agg, ids: ids, repo: repo, log: logger, rateLimit: rateLimit}
}

// Router builds the gin engine. Separated from Run so tests can drive the
// handlers through httptest.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if s.rateLimit > 0 {
		rl := middleware.NewRateLimiter(s.rateLimit)
		r.Use(rl.Middleware())
	}

	r.POST("/providers", s.registerProvider)
	r.GET("/providers", s.listProviders)
	r.DELETE("/providers/:name", s.removeProvider)
	r.POST("/providers/:name/directions", s.addDirection)
	r.DELETE("/providers/:name/directions", s.removeDirection)
	r.GET("/providers/:name/transactions", s.getTransactions)
	r.GET("/directions", s.getDirections)
	r.GET("/bids", s.getBids)
	r.POST("/buy", s.buy)
	r.POST("/buy/dry-run", s.buyDryRun)

	return r
}

func (s *HTTPServer) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *HTTPServer) registerProvider(c *gin.Context) {
	var req dto.RegisterProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := fake.New(req.Name, s.ids, s.repo, s.log, nil)
	for _, d := range req.Directions {
		if err := applyDirection(p, d); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
	}

	if err := s.agg.AddProvider(p); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.RegisterProviderResponse{Name: req.Name})
}

func (s *HTTPServer) listProviders(c *gin.Context) {
	var names []string
	for _, p := range s.agg.Providers() {
		names = append(names, p.Name())
	}
	c.JSON(http.StatusOK, dto.ListProvidersResponse{Providers: names})
}

func (s *HTTPServer) removeProvider(c *gin.Context) {
	name := c.Param("name")
	if err := s.agg.RemoveProvider(name); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": name})
}

func (s *HTTPServer) addDirection(c *gin.Context) {
	var req dto.DirectionSpec
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dm, ok := s.directionManager(c)
	if !ok {
		return
	}
	if err := applyDirection(dm, req); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	s.agg.InvalidateBids(c.Request.Context(), domain.Asset(req.SourceAsset), domain.Asset(req.DestAsset))
	c.JSON(http.StatusOK, gin.H{"source_asset": req.SourceAsset, "dest_asset": req.DestAsset})
}

func (s *HTTPServer) removeDirection(c *gin.Context) {
	source, dest, ok := pairParams(c)
	if !ok {
		return
	}
	dm, ok := s.directionManager(c)
	if !ok {
		return
	}
	dm.RemoveDirection(source, dest)
	s.agg.InvalidateBids(c.Request.Context(), source, dest)
	c.JSON(http.StatusOK, gin.H{"removed": source.String() + "->" + dest.String()})
}

func (s *HTTPServer) getTransactions(c *gin.Context) {
	name := c.Param("name")
	p, err := s.agg.Provider(name)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	var txs []*domain.Transaction
	if s.repo != nil {
		txs, err = s.repo.LoadTransactions(c.Request.Context(), name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	} else if log, ok := p.(interface{ Transactions() []*domain.Transaction }); ok {
		txs = log.Transactions()
	}
	c.JSON(http.StatusOK, dto.GetTransactionsResponse{Transactions: convertTransactions(txs)})
}

func (s *HTTPServer) getDirections(c *gin.Context) {
	dirs, err := s.agg.GetAllDirections(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.GetDirectionsResponse{Directions: convertDirections(dirs)})
}

func (s *HTTPServer) getBids(c *gin.Context) {
	source, dest, ok := pairParams(c)
	if !ok {
		return
	}
	bids, err := s.agg.GetAllBids(c.Request.Context(), source, dest)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.GetBidsResponse{Bids: convertBids(bids)})
}

func (s *HTTPServer) buy(c *gin.Context) {
	var req dto.BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	} else if _, exists := s.submittedID.LoadOrStore(requestID, struct{}{}); exists {
		c.JSON(http.StatusOK, dto.BuyResponse{RequestID: requestID, Message: "duplicate request"})
		return
	}

	id, err := s.agg.Buy(c.Request.Context(), req.ProviderName,
		domain.Asset(req.SourceAsset), domain.Asset(req.DestAsset),
		req.DestAmount, req.MaxSourceAmount)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.BuyResponse{RequestID: requestID, TransactionID: id})
}

func (s *HTTPServer) buyDryRun(c *gin.Context) {
	var req dto.BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	possible, err := s.agg.BuyDryRun(c.Request.Context(), req.ProviderName,
		domain.Asset(req.SourceAsset), domain.Asset(req.DestAsset),
		req.DestAmount, req.MaxSourceAmount)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.DryRunResponse{Possible: possible})
}

func (s *HTTPServer) directionManager(c *gin.Context) (port.DirectionManager, bool) {
	name := c.Param("name")
	p, err := s.agg.Provider(name)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return nil, false
	}
	dm, ok := p.(port.DirectionManager)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider does not support direction management"})
		return nil, false
	}
	return dm, true
}

func pairParams(c *gin.Context) (domain.Asset, domain.Asset, bool) {
	source := c.Query("source")
	dest := c.Query("dest")
	if source == "" || dest == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source and dest query parameters required"})
		return "", "", false
	}
	return domain.Asset(source), domain.Asset(dest), true
}

func applyDirection(dm port.DirectionManager, d dto.DirectionSpec) error {
	source := domain.Asset(d.SourceAsset)
	dest := domain.Asset(d.DestAsset)
	if len(d.Bids) > 0 {
		bids := make([]domain.Bid, len(d.Bids))
		for i, b := range d.Bids {
			bids[i] = domain.Bid{SourceAmount: b.SourceAmount, DestAmount: b.DestAmount}
		}
		return dm.AddDirectionBids(source, dest, d.Rate, bids)
	}
	dm.AddDirection(source, dest, d.Rate, d.OverallAmount)
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrUnknownProvider), errors.Is(err, core.ErrProviderNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrDuplicateProvider), errors.Is(err, domain.ErrInsufficientLiquidity):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnsupportedDirection),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnsupportedFeature):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func convertBids(bids []domain.Bid) []dto.Bid {
	res := make([]dto.Bid, len(bids))
	for i, b := range bids {
		res[i] = dto.Bid{
			ProviderName: b.ProviderName,
			SourceAsset:  b.SourceAsset.String(),
			DestAsset:    b.DestAsset.String(),
			SourceAmount: b.SourceAmount,
			DestAmount:   b.DestAmount,
			Rate:         b.Rate(),
		}
	}
	return res
}

func convertDirections(dirs []domain.ProviderDirection) []dto.Direction {
	res := make([]dto.Direction, len(dirs))
	for i, d := range dirs {
		res[i] = dto.Direction{
			ProviderName: d.ProviderName,
			SourceAsset:  d.SourceAsset.String(),
			DestAsset:    d.DestAsset.String(),
			Rate:         d.Rate,
			MaxAmount:    d.MaxAmount,
		}
	}
	return res
}

func convertTransactions(txs []*domain.Transaction) []dto.Transaction {
	res := make([]dto.Transaction, len(txs))
	for i, t := range txs {
		res[i] = dto.Transaction{
			ID:           t.ID,
			ProviderName: t.ProviderName,
			SourceAsset:  t.SourceAsset.String(),
			DestAsset:    t.DestAsset.String(),
			SourceAmount: t.SourceAmount,
			DestAmount:   t.DestAmount,
			Status:       string(t.Status),
			CreatedAt:    t.CreatedAt,
		}
	}
	return res
}
