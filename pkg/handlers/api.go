package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Revalidate drops cached pages so the next request regenerates them.
// Each path query parameter names one page; none purges everything.
func (p *Pages) Revalidate(c *gin.Context) {
	if p.cache == nil {
		c.JSON(http.StatusOK, gin.H{"revalidated": false})
		return
	}
	paths := c.QueryArray("path")
	keys := p.cache.Invalidate(c.Request.Context(), paths...)

	entry := p.log.WithField("paths", paths)
	if len(paths) == 0 {
		entry.Info("revalidated all pages")
		c.JSON(http.StatusOK, gin.H{"revalidated": true, "all": true})
		return
	}
	entry.Info("revalidated pages")
	c.JSON(http.StatusOK, gin.H{"revalidated": true, "keys": keys})
}

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

