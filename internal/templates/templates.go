// Package templates embute os templates de e-mail no binário, para que o
// envio não dependa do diretório de trabalho do processo.
package templates

import "embed"

//go:embed reservation_email.html
var FS embed.FS
