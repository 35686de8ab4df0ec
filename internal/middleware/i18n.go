package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}
type countryContextKey struct{}

var (
	LocaleKey  = localeContextKey{}
	CountryKey = countryContextKey{}
)

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// I18N stores the request's best-guess BCP-47 locale and country in the
// context. The locale comes from X-Locale, then Accept-Language, then
// defaultLocale; a region-less language is completed with the country.
func I18N(defaultLocale string, lookup CountryLookup) func(http.Handler) http.Handler {
	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		fallback = language.AmericanEnglish
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			country := ResolveCountry(r, lookup)
			locale := detectLocale(r, fallback, country)
			ctx := context.WithValue(r.Context(), LocaleKey, locale.String())
			if country != "" {
				ctx = context.WithValue(ctx, CountryKey, country)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback language.Tag, country string) language.Tag {
	tag, ok := parseLocale(r.Header.Get("X-Locale"))
	if !ok {
		tag, ok = parseAcceptLanguage(r.Header.Get("Accept-Language"))
	}
	if !ok {
		return fallback
	}
	return withRegion(tag, country)
}

func parseLocale(v string) (language.Tag, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return language.Und, false
	}
	tag, err := language.Parse(v)
	if err != nil || tag == language.Und {
		return language.Und, false
	}
	return tag, true
}

func parseAcceptLanguage(header string) (language.Tag, bool) {
	if strings.TrimSpace(header) == "" {
		return language.Und, false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return language.Und, false
	}
	for _, tag := range tags {
		if tag != language.Und {
			return tag, true
		}
	}
	return language.Und, false
}

// withRegion adds the country as region when the tag has none of its own.
func withRegion(tag language.Tag, country string) language.Tag {
	if _, conf := tag.Region(); conf == language.Exact || country == "" {
		return tag
	}
	region, err := language.ParseRegion(country)
	if err != nil {
		return tag
	}
	base, _ := tag.Base()
	composed, err := language.Compose(base, region)
	if err != nil {
		return tag
	}
	return composed
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// LocaleFromContext returns the locale stored by I18N, or "" outside it.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return ""
}

// CountryFromContext returns the ISO country code stored in the request context.
func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CountryKey).(string); ok {
		return v
	}
	return ""
}

// ResolveCountry resolves a best-effort ISO country code for the given request.
func ResolveCountry(r *http.Request, lookup CountryLookup) string {
	if r == nil {
		return ""
	}
	headerHints := []string{"X-Country-Code", "X-IP-Country", "CF-IPCountry", "X-Appengine-Country"}
	for _, key := range headerHints {
		if val := strings.TrimSpace(r.Header.Get(key)); val != "" && !strings.EqualFold(val, "XX") {
			return strings.ToUpper(val)
		}
	}
	if lookup != nil {
		if ip := ClientIP(r); ip != "" {
			if country, err := lookup(ip); err == nil && country != "" {
				return strings.ToUpper(country)
			}
		}
	}
	return ""
}
