package http

import (
	"net/http"
	"os"
	"sync"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/util"
)

// DefaultSwaggerSpec is the API description served at /swagger/doc.json.
const DefaultSwaggerSpec = "docs/swagger.yaml"

// RegisterSwagger registers the Swagger UI under /swagger. The YAML document
// at specPath is converted to JSON on first request and kept.
func RegisterSwagger(e *echo.Echo, specPath string) {
	var (
		once    sync.Once
		spec    []byte
		loadErr error
	)
	e.GET("/swagger/doc.json", func(c echo.Context) error {
		once.Do(func() {
			var data []byte
			data, loadErr = os.ReadFile(specPath)
			if loadErr != nil {
				return
			}
			spec, loadErr = yaml.YAMLToJSON(data)
		})
		if loadErr != nil {
			c.Logger().Errorf("load swagger spec %s: %v", specPath, loadErr)
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load swagger spec"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, spec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
