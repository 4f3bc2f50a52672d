package serve

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/puzzle-framework/kropki/pkg/kropki/board"
	"github.com/puzzle-framework/kropki/pkg/kropki/puzzle"
	"github.com/puzzle-framework/kropki/pkg/kropki/solver"
)

// NewRouter wires the API routes.
func NewRouter() *gin.Engine {
	e := gin.Default()
	e.Use(requestID())

	v1 := e.Group("/api").
		Group("/v1")
	v1.POST("/solve", NewSolveHandler().Solve)

	e.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return e
}

// requestID tags every request with a fresh UUID, echoed in the
// X-Request-Id header and carried into the handler logs.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set("requestID", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

type SolveRequest struct {
	Puzzle          string `json:"puzzle" binding:"required"`
	ForwardChecking bool   `json:"forwardChecking"`
	Heuristic       string `json:"heuristic"`
}

type SolveResponse struct {
	Grid        [board.Size][board.Size]int `json:"grid"`
	Assignments int                         `json:"assignments"`
	Backtracks  int                         `json:"backtracks"`
	Duration    string                      `json:"duration"`
}

type SolveHandler struct{}

func NewSolveHandler() *SolveHandler {
	return &SolveHandler{}
}

func (h *SolveHandler) Solve(c *gin.Context) {
	log := logrus.WithField("requestID", c.GetString("requestID"))

	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorf("read request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body", "message": err.Error()})
		return
	}

	b, err := puzzle.Parse(strings.NewReader(req.Puzzle))
	if err != nil {
		log.Errorf("parse puzzle: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse puzzle", "message": err.Error()})
		return
	}

	selection := solver.ScanOrder
	if req.Heuristic != "" {
		selection, err = solver.SelectionFromString(req.Heuristic)
		if err != nil {
			log.Errorf("parse heuristic: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown heuristic", "message": err.Error()})
			return
		}
	}
	engine, err := solver.New(solver.WithSelection(selection), solver.WithForwardChecking(req.ForwardChecking))
	if err != nil {
		log.Errorf("build engine: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build solver", "message": err.Error()})
		return
	}

	start := time.Now()
	solved, err := engine.Solve(c.Request.Context(), b)
	if err != nil {
		log.Errorf("search interrupted: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search interrupted", "message": err.Error()})
		return
	}
	stats := engine.Stats()
	if !solved {
		log.Errorf("puzzle has no solution")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       "Puzzle has no solution",
			"assignments": stats.Assignments,
			"backtracks":  stats.Backtracks,
		})
		return
	}

	log.WithFields(logrus.Fields{
		"assignments": stats.Assignments,
		"backtracks":  stats.Backtracks,
	}).Info("Puzzle solved")
	c.JSON(http.StatusOK, SolveResponse{
		Grid:        b.Grid(),
		Assignments: stats.Assignments,
		Backtracks:  stats.Backtracks,
		Duration:    time.Since(start).Round(time.Microsecond).String(),
	})
}
