package handlers

import (
	"surprise-bag-api/apperr"
	"surprise-bag-api/config"
	"surprise-bag-api/directory"
	"surprise-bag-api/ledger"
	"surprise-bag-api/lifecycle"

	"github.com/gin-gonic/gin"
)

func users() *directory.Directory { return directory.New(config.DB) }

func bags() *ledger.Ledger { return ledger.New(config.DB) }

func orders() *lifecycle.Engine { return lifecycle.New(config.DB) }

// respondError maps a classified error onto its HTTP status. Anything
// unclassified surfaces as a 500 with a generic message so raw storage
// errors never leak.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if apperr.KindOf(err) == 0 {
		msg = "Internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}
