package migrations

import "errors"

// ErrMigrate возвращается при ошибке применения миграций
var ErrMigrate = errors.New("migrations: failed to migrate")
