package export

import (
	"encoding/base64"
	"fmt"
)

// SuperficieImpresion builds an isolated page-sized HTML print context around
// the captured page image. The raster is inlined so the page has no external
// fetches and prints identically to the exported PDF.
func SuperficieImpresion(titulo string, jpegBytes []byte) string {
	datos := base64.StdEncoding.EncodeToString(jpegBytes)
	return fmt.Sprintf(`<!doctype html>
<html lang="es">
<head>
  <meta charset="utf-8" />
  <title>%s</title>
  <style>
    @page { size: letter; margin: 0; }
    html, body { margin: 0; padding: 0; background: #ffffff; }
    img { width: 8.5in; height: 11in; display: block; }
  </style>
</head>
<body>
  <img src="data:image/jpeg;base64,%s" alt="" />
</body>
</html>
`, titulo, datos)
}
