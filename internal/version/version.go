package version

import "fmt"

// Заполняются при сборке через -ldflags:
//
//	-X github.com/road23/candleshop/internal/version.version=v1.2.3
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info описывает сборку сервиса.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Get возвращает информацию о текущей сборке.
func Get() Info {
	return Info{Version: version, Commit: commit, Date: date}
}

// String возвращает однострочное представление сборки для логов.
func String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", version, commit, date)
}
