//go:build e2e

package e2e

import (
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"sync"
	"time"

	"loyalty-console/tests/common/builder"

	"github.com/gin-gonic/gin"
)

const bonusThreshold = 10

// FakeBackend serves the loyalty backend endpoints from memory.
type FakeBackend struct {
	server *nethttptest.Server
	token  string

	mu     sync.Mutex
	passes map[string]*builder.PassBuilder
	issued int
}

func NewFakeBackend(token string) *FakeBackend {
	f := &FakeBackend{token: token}
	f.Reset()

	engine := gin.New()
	engine.UseRawPath = true
	engine.UnescapePathValues = true
	engine.Use(f.authenticate)
	engine.GET("/passes", f.createPass)
	engine.GET("/passes/:serial/loyality", f.fetchPass)
	engine.POST("/passes/:serial/loyality/points", f.addPoints)
	engine.POST("/passes/:serial/loyality/bonus", f.redeemBonus)

	f.server = nethttptest.NewServer(engine)
	return f
}

func (f *FakeBackend) URL() string {
	return f.server.URL
}

func (f *FakeBackend) Close() {
	f.server.Close()
}

// Reset restores the seeded passes.
func (f *FakeBackend) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	used := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	f.passes = map[string]*builder.PassBuilder{
		"XYZ": builder.NewPassBuilder(),
		"USED": builder.NewPassBuilder().WithSerialNumber("USED").WithCurrentPoints(5).
			WithLastUsedAt(used),
	}
	f.issued = 0
}

func (f *FakeBackend) Issued() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issued
}

func (f *FakeBackend) authenticate(c *gin.Context) {
	if strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ") != f.token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	c.Next()
}

func (f *FakeBackend) lookup(c *gin.Context) (*builder.PassBuilder, bool) {
	p, ok := f.passes[c.Param("serial")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "pass not found"})
	}
	return p, ok
}

func (f *FakeBackend) fetchPass(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.lookup(c); ok {
		c.JSON(http.StatusOK, p.BuildJSON())
	}
}

func (f *FakeBackend) addPoints(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.lookup(c)
	if !ok {
		return
	}
	var req struct {
		AddPoints *int `json:"addPoints"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.AddPoints == nil || *req.AddPoints < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid amount of points"})
		return
	}

	now := time.Now().UTC()
	p.CurrentPoints += *req.AddPoints
	p.TotalPoints += *req.AddPoints
	p.LastUsedAt = &now
	c.JSON(http.StatusOK, p.BuildJSON())
}

func (f *FakeBackend) redeemBonus(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.lookup(c)
	if !ok {
		return
	}
	if p.CurrentPoints < bonusThreshold {
		c.JSON(http.StatusBadRequest, gin.H{"message": "not enough points"})
		return
	}

	now := time.Now().UTC()
	p.CurrentPoints -= bonusThreshold
	p.AlreadyRedeemed++
	p.LastUsedAt = &now
	c.JSON(http.StatusOK, p.BuildJSON())
}

func (f *FakeBackend) createPass(c *gin.Context) {
	f.mu.Lock()
	f.issued++
	f.mu.Unlock()

	c.Header("Content-Disposition", `attachment; filename="generated.pkpass"`)
	c.Data(http.StatusOK, "application/vnd.apple.pkpass", []byte("PK\x03\x04fake-pass"))
}
