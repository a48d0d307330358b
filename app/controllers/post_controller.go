package controllers

import (
	"net/http"
	"strconv"

	"cheeseblog/app/forms"
	"cheeseblog/app/middleware"
	"cheeseblog/app/models"
	"cheeseblog/app/services"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	*Renderer
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(rd *Renderer, postService *services.PostService) *PostController {
	return &PostController{Renderer: rd, postService: postService}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		pc.serverError(w, r, err)
		return
	}
	pc.render(w, r, "index", &Page{Posts: posts})
}

// Show handles displaying a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		pc.postError(w, r, err)
		return
	}
	pc.render(w, r, "post", &Page{Post: post, Form: &forms.CommentForm{}})
}

// Create shows the authoring form and stores new posts
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	page := &Page{Action: "/new-post"}
	if r.Method != http.MethodPost {
		page.Form = &forms.PostForm{}
		pc.render(w, r, "make-post", page)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := forms.NewPostForm(r.PostForm)
	if !form.Validate() {
		page.Form = form
		pc.render(w, r, "make-post", page)
		return
	}

	author := middleware.CurrentAccount(r.Context())
	if err := pc.postService.CreatePost(r.Context(), postFromForm(form), author.ID); err != nil {
		pc.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Edit shows the prefilled form and updates the post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		pc.postError(w, r, err)
		return
	}
	page := &Page{Post: post, Edit: true, Action: "/edit-post/" + strconv.Itoa(id)}

	if r.Method != http.MethodPost {
		page.Form = &forms.PostForm{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			ImgURL:   post.ImgURL,
			Body:     post.Body,
		}
		pc.render(w, r, "make-post", page)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := forms.NewPostForm(r.PostForm)
	if !form.Validate() {
		page.Form = form
		pc.render(w, r, "make-post", page)
		return
	}

	if _, err := pc.postService.UpdatePost(r.Context(), id, postFromForm(form)); err != nil {
		pc.postError(w, r, err)
		return
	}
	http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusFound)
}

// Delete removes a post and its comments
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := pc.postService.DeletePost(r.Context(), id); err != nil {
		pc.postError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// About renders the static about page
func (pc *PostController) About(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, "about", &Page{})
}

func postFromForm(form *forms.PostForm) *models.Post {
	return &models.Post{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		ImgURL:   form.ImgURL,
		Body:     form.Body,
	}
}
