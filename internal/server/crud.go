// internal/server/crud.go
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/EmmanuelSan01/SportBot/internal/models"
)

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// --- productos ---

func (s *Server) handleProductoList(w http.ResponseWriter, r *http.Request) {
	productos, err := s.deps.Productos.List(r.Context())
	if err != nil {
		writeStoreError(w, "producto", 0, err)
		return
	}
	writeJSON(w, http.StatusOK, productos)
}

func (s *Server) handleProductoGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	producto, err := s.deps.Productos.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, "producto", id, err)
		return
	}
	writeJSON(w, http.StatusOK, producto)
}

func (s *Server) handleProductosByCategoria(w http.ResponseWriter, r *http.Request) {
	categoriaID, err := strconv.ParseInt(r.PathValue("categoriaID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid categoria id")
		return
	}
	productos, err := s.deps.Productos.ListByCategoria(r.Context(), categoriaID)
	if err != nil {
		writeStoreError(w, "producto", 0, err)
		return
	}
	writeJSON(w, http.StatusOK, productos)
}

func (s *Server) handleProductoCreate(w http.ResponseWriter, r *http.Request) {
	var in models.ProductoCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	producto, err := s.deps.Productos.Create(r.Context(), &in)
	if err != nil {
		writeStoreError(w, "producto", 0, err)
		return
	}
	writeJSON(w, http.StatusCreated, producto)
}

func (s *Server) handleProductoUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var in models.ProductoUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	producto, err := s.deps.Productos.Update(r.Context(), id, &in)
	if err != nil {
		writeStoreError(w, "producto", id, err)
		return
	}
	writeJSON(w, http.StatusOK, producto)
}

func (s *Server) handleProductoDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.deps.Productos.Delete(r.Context(), id); err != nil {
		writeStoreError(w, "producto", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- categorias ---

func (s *Server) handleCategoriaList(w http.ResponseWriter, r *http.Request) {
	categorias, err := s.deps.Categorias.List(r.Context())
	if err != nil {
		writeStoreError(w, "categoria", 0, err)
		return
	}
	writeJSON(w, http.StatusOK, categorias)
}

func (s *Server) handleCategoriaGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	categoria, err := s.deps.Categorias.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, "categoria", id, err)
		return
	}
	writeJSON(w, http.StatusOK, categoria)
}

func (s *Server) handleCategoriaCreate(w http.ResponseWriter, r *http.Request) {
	var in models.CategoriaCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	categoria, err := s.deps.Categorias.Create(r.Context(), &in)
	if err != nil {
		writeStoreError(w, "categoria", 0, err)
		return
	}
	writeJSON(w, http.StatusCreated, categoria)
}

func (s *Server) handleCategoriaUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var in models.CategoriaUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	categoria, err := s.deps.Categorias.Update(r.Context(), id, &in)
	if err != nil {
		writeStoreError(w, "categoria", id, err)
		return
	}
	writeJSON(w, http.StatusOK, categoria)
}

func (s *Server) handleCategoriaDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.deps.Categorias.Delete(r.Context(), id); err != nil {
		writeStoreError(w, "categoria", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- promociones ---

func (s *Server) handlePromocionList(w http.ResponseWriter, r *http.Request) {
	promociones, err := s.deps.Promociones.List(r.Context())
	if err != nil {
		writeStoreError(w, "promocion", 0, err)
		return
	}
	writeJSON(w, http.StatusOK, promociones)
}

func (s *Server) handlePromocionGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	promocion, err := s.deps.Promociones.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, "promocion", id, err)
		return
	}
	writeJSON(w, http.StatusOK, promocion)
}

func (s *Server) handlePromocionCreate(w http.ResponseWriter, r *http.Request) {
	var in models.PromocionCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	promocion, err := s.deps.Promociones.Create(r.Context(), &in)
	if err != nil {
		writeStoreError(w, "promocion", 0, err)
		return
	}
	writeJSON(w, http.StatusCreated, promocion)
}

func (s *Server) handlePromocionUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var in models.PromocionUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	promocion, err := s.deps.Promociones.Update(r.Context(), id, &in)
	if err != nil {
		writeStoreError(w, "promocion", id, err)
		return
	}
	writeJSON(w, http.StatusOK, promocion)
}

func (s *Server) handlePromocionDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.deps.Promociones.Delete(r.Context(), id); err != nil {
		writeStoreError(w, "promocion", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- usuarios ---

func (s *Server) handleUsuarioList(w http.ResponseWriter, r *http.Request) {
	usuarios, err := s.deps.Usuarios.List(r.Context())
	if err != nil {
		writeStoreError(w, "usuario", 0, err)
		return
	}
	writeJSON(w, http.StatusOK, usuarios)
}

func (s *Server) handleUsuarioGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	usuario, err := s.deps.Usuarios.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, "usuario", id, err)
		return
	}
	writeJSON(w, http.StatusOK, usuario)
}

func (s *Server) handleUsuarioCreate(w http.ResponseWriter, r *http.Request) {
	var in models.UsuarioCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	usuario, err := s.deps.Usuarios.Create(r.Context(), &in)
	if err != nil {
		writeStoreError(w, "usuario", 0, err)
		return
	}
	writeJSON(w, http.StatusCreated, usuario)
}

func (s *Server) handleUsuarioUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var in models.UsuarioUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	usuario, err := s.deps.Usuarios.Update(r.Context(), id, &in)
	if err != nil {
		writeStoreError(w, "usuario", id, err)
		return
	}
	writeJSON(w, http.StatusOK, usuario)
}

func (s *Server) handleUsuarioDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.deps.Usuarios.Delete(r.Context(), id); err != nil {
		writeStoreError(w, "usuario", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- chats ---

func (s *Server) handleChatList(w http.ResponseWriter, r *http.Request) {
	chats, err := s.deps.Chats.List(r.Context())
	if err != nil {
		writeStoreError(w, "chat", 0, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

func (s *Server) handleChatGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	chat, err := s.deps.Chats.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, "chat", id, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

// handleChatCreate upserts the conversation row: creating an existing
// (usuario, chat) pair records another message on it.
func (s *Server) handleChatCreate(w http.ResponseWriter, r *http.Request) {
	var in models.ChatCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if in.UsuarioID <= 0 || in.ChatID == "" {
		writeError(w, http.StatusBadRequest, "usuarioId and chatId are required")
		return
	}
	chat, err := s.deps.Chats.RecordMessage(r.Context(), in.UsuarioID, in.ChatID, in.UltimoMensaje)
	if err != nil {
		writeStoreError(w, "chat", 0, err)
		return
	}
	writeJSON(w, http.StatusCreated, chat)
}

func (s *Server) handleChatDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.deps.Chats.Delete(r.Context(), id); err != nil {
		writeStoreError(w, "chat", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
