// Package docs provides generated OpenAPI documentation.
//
// Railnotes API
//
//	@title			Railnotes API
//	@version		1.0
//	@description	Converts unstructured train operational text into structured JSON records.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/metroplan/railnotes
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8000
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/railnotes/serve.go -o . --parseDependency --parseInternal
