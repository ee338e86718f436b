package migration

import "embed"

// FS incorpora os arquivos SQL de migração deste diretório. A biblioteca
// golang-migrate lê esses arquivos via driver iofs ao aplicar as
// migrações.
//
//go:embed *.sql
var FS embed.FS

const Version = 1
