package layout

import (
	"errors"
	"fmt"
)

// ErrInvalidLayoutConfig 表示排版参数无法产生任何合法的页面或行。
// 所有校验失败都可以通过 errors.Is(err, ErrInvalidLayoutConfig) 识别。
var ErrInvalidLayoutConfig = errors.New("layout: invalid layout config")

// ConfigError 记录具体是哪个参数不合法。
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("layout: invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("layout: %s", e.Message)
}

// Unwrap 使 ConfigError 与 ErrInvalidLayoutConfig 匹配。
func (e *ConfigError) Unwrap() error {
	return ErrInvalidLayoutConfig
}

func invalidConfig(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}
