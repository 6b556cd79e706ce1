package generator

import (
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/hatch/internal/logger"
	"github.com/simonhull/firebird-suite/hatch/internal/pkgjson"
)

// configFile describes how one package.json key is written as its own file.
type configFile struct {
	key      string
	filename string
	render   func(value any) ([]byte, error)
}

// configFiles lists the extractable keys in extraction order.
var configFiles = []configFile{
	{key: "babel", filename: "babel.config.js", render: renderModuleExports},
	{key: "eslintConfig", filename: ".eslintrc.js", render: renderModuleExports},
	{key: "postcss", filename: "postcss.config.js", render: renderModuleExports},
	{key: "jest", filename: "jest.config.js", render: renderModuleExports},
	{key: "browserslist", filename: ".browserslistrc", render: renderLines},
}

// ExtractConfig moves known tool configuration out of package.json into
// dedicated files. A key whose target file already exists stays in the
// package. Running it twice changes nothing.
func (e *Engine) ExtractConfig() {
	for _, cf := range configFiles {
		value, ok := e.pkg[cf.key]
		if !ok {
			continue
		}
		if e.files.Has(cf.filename) {
			e.log.Debug("config file already present, key left in package.json",
				logger.F("key", cf.key), logger.F("file", cf.filename))
			continue
		}

		content, err := cf.render(value)
		if err != nil {
			e.log.Warn("config not extracted", logger.F("key", cf.key), logger.F("error", err))
			continue
		}
		if err := e.files.SetText(cf.filename, content); err != nil {
			e.log.Warn("config not extracted", logger.F("key", cf.key), logger.F("error", err))
			continue
		}
		delete(e.pkg, cf.key)
		e.log.Debug("config extracted", logger.F("key", cf.key), logger.F("file", cf.filename))
	}
}

func renderModuleExports(value any) ([]byte, error) {
	body, err := pkgjson.EncodeValue(value)
	if err != nil {
		return nil, err
	}
	return []byte("module.exports = " + string(body) + "\n"), nil
}

func renderLines(value any) ([]byte, error) {
	var lines []string
	switch v := value.(type) {
	case string:
		lines = []string{v}
	case []string:
		lines = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string entries, got %T", item)
			}
			lines = append(lines, s)
		}
	default:
		return nil, fmt.Errorf("expected a string or a list, got %T", value)
	}
	return []byte(strings.Join(lines, "\n") + "\n"), nil
}
