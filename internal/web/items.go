package web

import (
	"log/slog"
	"net/http"

	"github.com/zmarolt/catadmin/internal/backend"
	"github.com/zmarolt/catadmin/internal/model"
)

// itemsData is the item list page: the collection plus the add-row
// draft, preserved when a create fails.
type itemsData struct {
	PageData
	Items      []model.Item
	Categories []string
	Draft      struct {
		Name     string
		Category string
		Price    string
	}
}

// itemDetailData is the single-item edit form.
type itemDetailData struct {
	PageData
	ID       string
	Name     string
	Category string
	Price    string
}

// ItemsPage handles GET /items. The list is always fetched fresh;
// this view never caches (every mutation redirects back here, which
// is the reload).
func (s *Server) ItemsPage(w http.ResponseWriter, r *http.Request) {
	data := &itemsData{PageData: s.pageData("Items"), Categories: model.Categories}

	items, err := s.Backend.ListItems(r.Context())
	if err != nil {
		slog.Error("failed to list items", "error", err)
		data.Error = "Loading items failed"
	}
	data.Items = items

	s.Templates.Render(w, "items.html", data)
}

// ItemCreateSubmit handles POST /items. On success the redirect
// reloads the list and clears the add-row inputs; on failure the list
// is re-rendered with the submitted values preserved.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	category := r.FormValue("category")
	price := r.FormValue("price")

	if err := s.Backend.CreateItem(r.Context(), name, category, price); err != nil {
		slog.Error("failed to create item", "error", err)
		data := &itemsData{PageData: s.pageData("Items"), Categories: model.Categories}
		data.Error = "Create failed: " + backend.Message(err, "backend unavailable")
		data.Draft.Name = name
		data.Draft.Category = category
		data.Draft.Price = price
		if items, listErr := s.Backend.ListItems(r.Context()); listErr == nil {
			data.Items = items
		}
		s.Templates.Render(w, "items.html", data)
		return
	}

	slog.Info("item created", "name", name, "category", category)
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

// ItemDeleteSubmit handles POST /items/{id}/delete. Confirmation
// happens in the browser before the form submits.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.Backend.DeleteItem(r.Context(), id); err != nil {
		slog.Error("failed to delete item", "id", id, "error", err)
		data := &itemsData{PageData: s.pageData("Items"), Categories: model.Categories}
		data.Error = "Delete failed"
		if items, listErr := s.Backend.ListItems(r.Context()); listErr == nil {
			data.Items = items
		}
		s.Templates.Render(w, "items.html", data)
		return
	}

	slog.Info("item deleted", "id", id)
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}

// ItemDetailPage handles GET /items/{id}. The form fields are written
// once, from this fetch; they are not refreshed afterwards.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	data := &itemDetailData{PageData: s.pageData("Edit item"), ID: id}

	item, err := s.Backend.GetItem(r.Context(), id)
	if err != nil {
		slog.Error("failed to get item", "id", id, "error", err)
		data.Error = "Loading item failed"
		s.Templates.Render(w, "item_detail.html", data)
		return
	}

	data.Name = item.Name
	data.Category = item.Category
	data.Price = item.Price.String()
	s.Templates.Render(w, "item_detail.html", data)
}

// ItemUpdateSubmit handles POST /items/{id}. Success navigates back
// to the list; failure re-renders the form with the submitted values.
func (s *Server) ItemUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	name := r.FormValue("name")
	category := r.FormValue("category")
	price := r.FormValue("price")

	if err := s.Backend.UpdateItem(r.Context(), id, name, category, price); err != nil {
		slog.Error("failed to update item", "id", id, "error", err)
		data := &itemDetailData{
			PageData: s.pageData("Edit item"),
			ID:       id,
			Name:     name,
			Category: category,
			Price:    price,
		}
		data.Error = "Update failed"
		s.Templates.Render(w, "item_detail.html", data)
		return
	}

	slog.Info("item updated", "id", id, "name", name)
	http.Redirect(w, r, "/items", http.StatusSeeOther)
}
