package renderer

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory 根据字体名（空表示默认字体）创建 Backend。
type Factory func(font string) (Backend, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register 以 name 注册一个 Backend 工厂，通常在渲染器包的 init 中调用。
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if f == nil {
		panic("renderer: Register factory is nil")
	}
	if _, dup := registry[name]; dup {
		panic("renderer: Register called twice for " + name)
	}
	registry[name] = f
}

// Open 创建名为 name 的 Backend。
func Open(name, font string) (Backend, error) {
	registryMu.RLock()
	f, ok := registry[strings.ToLower(name)]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("未知的渲染器 %q（可用：%s）", name, strings.Join(Names(), ", "))
	}
	return f(font)
}

// Names 返回已注册的渲染器名称。
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
