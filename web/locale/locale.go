// Package locale translates page text and flash messages.
package locale

import (
	"io/fs"
	"strings"

	"github.com/nenood/watchlist/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const langKey = "lang"

var i18nBundle *i18n.Bundle

func newBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.MustParse("en-US"))
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

// InitLocalizer loads every message file under translation/ in fsys.
func InitLocalizer(fsys fs.FS) error {
	bundle := newBundle()
	if err := parseTranslationFiles(fsys, bundle); err != nil {
		return err
	}
	i18nBundle = bundle
	return nil
}

func createTemplateData(params []string, separator ...string) map[string]any {
	sep := "=="
	if len(separator) > 0 {
		sep = separator[0]
	}

	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, sep, 2)
		if len(parts) != 2 {
			continue
		}
		templateData[parts[0]] = parts[1]
	}
	return templateData
}

// I18n returns the message for key in the best match for lang, an Accept-Language
// style list. Params take the form "name==value". Unknown keys come back as
// the key itself.
func I18n(lang string, key string, params ...string) string {
	if i18nBundle == nil {
		return key
	}
	localizer := i18n.NewLocalizer(i18nBundle, lang)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Warningf("Failed to localize message %q: %v", key, err)
		return key
	}
	return msg
}

// LocalizerMiddleware picks the request language from the lang cookie or the
// Accept-Language header.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string
		if cookie, err := c.Request.Cookie("lang"); err == nil && cookie.Value != "" {
			lang = cookie.Value
		} else {
			lang = c.GetHeader("Accept-Language")
		}
		c.Set(langKey, lang)
		c.Next()
	}
}

// GetLang returns the language chosen by LocalizerMiddleware.
func GetLang(c *gin.Context) string {
	return c.GetString(langKey)
}

func parseTranslationFiles(fsys fs.FS, bundle *i18n.Bundle) error {
	return fs.WalkDir(fsys, "translation", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		_, err = bundle.ParseMessageFileBytes(data, path)
		return err
	})
}
