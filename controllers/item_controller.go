package controllers

import (
	"errors"
	"fmt"

	"Gin_postgres_redis_lend_tool/models"
	"Gin_postgres_redis_lend_tool/session"

	"github.com/gin-gonic/gin"
)

type ItemController struct{ *Srv }

func NewItemController(s *Srv) *ItemController { return &ItemController{Srv: s} }

type addItemForm struct {
	Name  string `form:"name"`
	Total string `form:"total"`
}

type editItemForm struct {
	Name      string `form:"name"`
	Total     string `form:"total"`
	Available string `form:"available"`
}

func (f editItemForm) counts() (total, available int, err error) {
	if total, err = formInt("total", f.Total); err != nil {
		return 0, 0, err
	}
	if available, err = formInt("available", f.Available); err != nil {
		return 0, 0, err
	}
	return total, available, nil
}

// GET /
func (ic *ItemController) Index(c *gin.Context) {
	ic.render(c, "index.html", ic.page(c, "Home"))
}

// GET /inventory
func (ic *ItemController) InventoryPage(c *gin.Context) {
	items, err := ic.Inventory.ListItems(c.Request.Context())
	if err != nil {
		ic.failPage(c, err)
		return
	}
	data := ic.page(c, "Inventory")
	data["Items"] = items
	ic.render(c, "inventory.html", data)
}

// GET /admin/inventory
func (ic *ItemController) AdminInventory(c *gin.Context) {
	rows, err := ic.Inventory.ListWithOutstanding(c.Request.Context())
	if err != nil {
		ic.failPage(c, err)
		return
	}
	data := ic.page(c, "Manage inventory")
	data["Rows"] = rows
	ic.render(c, "admin_inventory.html", data)
}

// POST /admin/add_item
func (ic *ItemController) AddItem(c *gin.Context) {
	var in addItemForm
	if err := bindForm(c, &in); err != nil {
		ic.fail(c, "/admin/inventory", "Item", err)
		return
	}
	total, err := formInt("total", in.Total)
	if err != nil {
		ic.fail(c, "/admin/inventory", "Item", err)
		return
	}
	it, err := ic.Inventory.CreateItem(c.Request.Context(), in.Name, total)
	if err != nil {
		ic.fail(c, "/admin/inventory", "Item", err)
		return
	}
	ic.Log.Info().Uint("item_id", it.ID).Str("name", it.Name).Int("total", it.Total).Msg("item added")
	ic.redirect(c, "/admin/inventory", session.FlashSuccess, "Item added.")
}

// GET /admin/edit_item/:id
func (ic *ItemController) EditItemPage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		ic.fail(c, "/admin/inventory", "Item", models.ErrNotFound)
		return
	}
	it, err := ic.Inventory.GetItem(c.Request.Context(), id)
	if err != nil {
		ic.fail(c, "/admin/inventory", "Item", err)
		return
	}
	data := ic.page(c, "Edit "+it.Name)
	data["Item"] = it
	ic.render(c, "edit_item.html", data)
}

// POST /admin/edit_item/:id
func (ic *ItemController) EditItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		ic.fail(c, "/admin/inventory", "Item", models.ErrNotFound)
		return
	}
	back := fmt.Sprintf("/admin/edit_item/%d", id)

	var in editItemForm
	if err := bindForm(c, &in); err != nil {
		ic.fail(c, back, "Item", err)
		return
	}
	total, available, err := in.counts()
	if err != nil {
		ic.fail(c, back, "Item", err)
		return
	}
	if _, err := ic.Inventory.UpdateItem(c.Request.Context(), id, in.Name, total, available); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			back = "/admin/inventory"
		}
		ic.fail(c, back, "Item", err)
		return
	}
	ic.Log.Info().Uint("item_id", id).Int("total", total).Int("available", available).Msg("item updated")
	ic.redirect(c, "/admin/inventory", session.FlashSuccess, "Item updated.")
}

// POST /admin/delete_item/:id
func (ic *ItemController) DeleteItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		ic.fail(c, "/admin/inventory", "Item", models.ErrNotFound)
		return
	}
	if err := ic.Inventory.DeleteItem(c.Request.Context(), id); err != nil {
		ic.fail(c, "/admin/inventory", "Item", err)
		return
	}
	ic.Log.Info().Uint("item_id", id).Msg("item deleted")
	ic.redirect(c, "/admin/inventory", session.FlashSuccess, "Item deleted.")
}
