// Package forms binds and validates the HTML forms of the site.
package forms

import (
	"net/http"
	"strings"
)

// Errors maps a form field name to its error message.
type Errors map[string]string

// Get returns the message for the field, or an empty string.
func (e Errors) Get(field string) string {
	return e[field]
}

// ArticleForm is the add/edit article form.
type ArticleForm struct {
	Title            string `form:"title" validate:"required,max=200"`
	Content          string `form:"content" validate:"required"`
	ShowOnWhiteboard bool   `form:"show_on_whiteboard"`
}

// PageTitleForm renames a page from the admin dashboard.
type PageTitleForm struct {
	Title string `form:"title" validate:"required,max=100"`
}

// LoginForm is the sign in form.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

// BindArticle reads the article form from the request body. The whiteboard
// checkbox is only honoured when allowWhiteboard is set.
func BindArticle(r *http.Request, allowWhiteboard bool) (ArticleForm, error) {
	if err := r.ParseForm(); err != nil {
		return ArticleForm{}, err
	}
	form := ArticleForm{
		Title:   strings.TrimSpace(r.PostForm.Get("title")),
		Content: strings.TrimSpace(r.PostForm.Get("content")),
	}
	if allowWhiteboard {
		form.ShowOnWhiteboard = checked(r.PostForm.Get("show_on_whiteboard"))
	}
	return form, nil
}

// BindPageTitle reads the page rename form from the request body.
func BindPageTitle(r *http.Request) (PageTitleForm, error) {
	if err := r.ParseForm(); err != nil {
		return PageTitleForm{}, err
	}
	return PageTitleForm{Title: strings.TrimSpace(r.PostForm.Get("title"))}, nil
}

// BindLogin reads the login form. The password is taken as entered.
func BindLogin(r *http.Request) (LoginForm, error) {
	if err := r.ParseForm(); err != nil {
		return LoginForm{}, err
	}
	return LoginForm{
		Username: strings.TrimSpace(r.PostForm.Get("username")),
		Password: r.PostForm.Get("password"),
		Next:     r.Form.Get("next"),
	}, nil
}

func checked(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
