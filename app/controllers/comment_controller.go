package controllers

import (
	"net/http"
	"strconv"

	"cheeseblog/app/forms"
	"cheeseblog/app/middleware"
	"cheeseblog/app/services"
)

// FlashLoginToComment is shown when an anonymous visitor submits a comment.
const FlashLoginToComment = "Please login or register to comment!"

// CommentController handles comment submissions on the post page
type CommentController struct {
	*Renderer
	postService    *services.PostService
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(rd *Renderer, postService *services.PostService, commentService *services.CommentService) *CommentController {
	return &CommentController{
		Renderer:       rd,
		postService:    postService,
		commentService: commentService,
	}
}

// Create validates the comment form first; only a valid submission checks
// that someone is logged in.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	post, err := cc.postService.GetPost(r.Context(), id)
	if err != nil {
		cc.postError(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := forms.NewCommentForm(r.PostForm)
	if !form.Validate() {
		cc.render(w, r, "post", &Page{Post: post, Form: form})
		return
	}

	account := middleware.CurrentAccount(r.Context())
	if account == nil {
		cc.flashRedirect(w, r, FlashLoginToComment, "/login")
		return
	}

	if _, err := cc.commentService.CreateComment(r.Context(), id, account.ID, form.Body); err != nil {
		cc.postError(w, r, err)
		return
	}
	http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusFound)
}
