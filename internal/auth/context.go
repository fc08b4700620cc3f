package auth

import "github.com/gin-gonic/gin"

// Actor identifies who performed a mutation, recorded on ledger rows.
type Actor struct {
	UserID   string
	UserName string
}

// GetMerchantID reads the merchant identity the gateway attached to the
// request. Authentication itself happens upstream.
func GetMerchantID(c *gin.Context) string {
	return c.GetHeader("X-Merchant-ID")
}

func GetActor(c *gin.Context) Actor {
	return Actor{
		UserID:   c.GetHeader("X-User-ID"),
		UserName: c.GetHeader("X-User-Name"),
	}
}
