// internal/sync/content.go
package sync

import (
	"fmt"
	"strings"

	"github.com/EmmanuelSan01/SportBot/internal/models"
)

// Searchable content rendering. Each catalog row becomes one labeled text
// line; empty fields are omitted so the embedding never sees bare labels.

func renderProducto(p *models.Producto) string {
	parts := []string{
		labeled("Producto", p.Nombre),
		labeled("Descripción", p.Descripcion),
		labeled("Categoría", p.CategoriaNombre),
	}
	if p.Precio > 0 {
		parts = append(parts, fmt.Sprintf("Precio: $%v", p.Precio))
	}
	if p.Disponible {
		parts = append(parts, "Disponible: Sí")
	} else {
		parts = append(parts, "Disponible: No")
	}
	return joinParts(parts)
}

func renderCategoria(c *models.Categoria) string {
	return joinParts([]string{
		labeled("Categoría", c.Nombre),
		labeled("Descripción", c.Descripcion),
	})
}

func renderPromocion(p *models.Promocion) string {
	parts := []string{
		labeled("Promoción", p.Titulo),
		labeled("Descripción", p.Descripcion),
	}
	if p.Descuento > 0 {
		parts = append(parts, fmt.Sprintf("Descuento: %v%%", p.Descuento))
	}
	parts = append(parts, labeled("Producto", p.ProductoNombre))
	if p.Activa {
		parts = append(parts, "Estado: Activa")
	} else {
		parts = append(parts, "Estado: Inactiva")
	}
	return joinParts(parts)
}

func labeled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func joinParts(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " | ")
}
