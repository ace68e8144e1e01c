package middleware

import (
	"github.com/Sedmeq/WorkTrack/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

var supportedLocales = []language.Tag{
	language.Azerbaijani,
	language.English,
	language.Turkish,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// Locale negotiates Accept-Language against the bundled translations. Without
// a header the i18n default applies.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Accept-Language")
		if header == "" {
			c.Next()
			return
		}

		tags, _, err := language.ParseAcceptLanguage(header)
		if err != nil || len(tags) == 0 {
			c.Next()
			return
		}
		_, idx, conf := localeMatcher.Match(tags...)
		if conf == language.No {
			c.Next()
			return
		}

		base, _ := supportedLocales[idx].Base()
		c.Set("locale", base.String())
		c.Request = c.Request.WithContext(contextutil.WithLocale(c.Request.Context(), base.String()))
		c.Next()
	}
}
