package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/portal/internal/clientcontext"
)

const sessionCookieName = "_portal_sid"

// ContactAuth resolves the portal token to a contact identity and stores it
// in the request context. The token doubles as the session key for selection
// state, so state is naturally scoped to one contact session.
func (s *Server) ContactAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(sessionCookieName); err == nil {
				token = strings.TrimSpace(cookie)
			}
		}
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := c.Request.Context()
		contact, err := s.clientSvc.FindContactByToken(ctx, token)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		client, err := s.clientSvc.GetClient(ctx, contact.ClientID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		identity := clientcontext.Identity{
			ContactID:  contact.ID,
			ClientID:   contact.ClientID,
			CompanyID:  contact.CompanyID,
			Locale:     client.Locale,
			SessionKey: token,
		}
		c.Request = c.Request.WithContext(clientcontext.WithIdentity(ctx, identity))
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
