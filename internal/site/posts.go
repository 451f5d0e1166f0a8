package site

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iburimskiy/particle-field/internal/config"
)

type Post struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	BloggerURL   string `json:"bloggerUrl"`
	PreviewImage string `json:"previewImage,omitempty"`
	Snippet      string `json:"snippet"`
}

// Catalog is the ordered list of blog posts shown on the page.
type Catalog struct {
	Posts          []Post
	InitialVisible int
	MoreText       string
	LessText       string
}

// PreviewPage is what the blog section renders for one toggle state.
type PreviewPage struct {
	Posts       []Post `json:"posts"`
	Total       int    `json:"total"`
	AllVisible  bool   `json:"allVisible"`
	ShowToggle  bool   `json:"showToggle"`
	ToggleLabel string `json:"toggleLabel"`
	EmptyNotice string `json:"emptyNotice,omitempty"`
}

const (
	softwareSnippet = "Check out the best tools for chemical engineers! Use Aspen Plus and HYSYS to test ideas, AutoCAD and SolidWorks to draw designs, MATLAB, Python, and Minitab to study data, and Simulink, LabVIEW, and DeltaV to control processes. These make work easier and smarter! Great for students and experts."
	nepalSnippet    = "The history of chemical engineering in Nepal may be short, but its development has been promising. Originating after the Industrial Revolution, this field can significantly contribute to Nepal's pharmaceutical, food processing, cement, environmental protection, and renewable energy sectors."
	remoteSnippet   = "Practical advice and strategies to stay focused, organized, and maintain a healthy work-life balance while working from home effectively."
)

func DefaultCatalog() *Catalog {
	return &Catalog{
		InitialVisible: config.BlogInitialVisible,
		MoreText:       config.BlogMoreText,
		LessText:       config.BlogLessText,
		Posts: []Post{
			{
				ID:           "blog1",
				Title:        "Essential Software for Chemical Engineers",
				BloggerURL:   "https://eramrit.blogspot.com/2025/05/essential-software-for-chemical.html",
				PreviewImage: "https://bit.ly/amritkblog1",
				Snippet:      softwareSnippet,
			},
			{
				ID:           "blog2",
				Title:        "Chemical Engineering in Nepal: Opportunities and Challenges",
				BloggerURL:   "https://eramrit.blogspot.com/2025/05/chemical-engineering-in-nepal.html",
				PreviewImage: "https://bit.ly/amritkblog2",
				Snippet:      nepalSnippet,
			},
			{
				ID:         "blog3",
				Title:      "Mastering Remote Work: Tips for Productivity",
				BloggerURL: "https://eramritkhanal.blogspot.com/your-remote-work-link-here",
				Snippet:    remoteSnippet,
			},
			{
				ID:           "blog4",
				Title:        "Essential Software for Chemical Engineers (Copy)",
				BloggerURL:   "https://eramrit.blogspot.com/2025/05/essential-software-for-chemical.html",
				PreviewImage: "https://bit.ly/amritkblog1",
				Snippet:      softwareSnippet,
			},
			{
				ID:           "blog5",
				Title:        "Chemical Engineering in Nepal (Copy)",
				BloggerURL:   "https://eramrit.blogspot.com/2025/05/chemical-engineering-in-nepal.html",
				PreviewImage: "https://bit.ly/amritkblog2",
				Snippet:      nepalSnippet,
			},
			{
				ID:         "blog6",
				Title:      "Mastering Remote Work (Copy)",
				BloggerURL: "https://eramritkhanal.blogspot.com/your-remote-work-link-here",
				Snippet:    remoteSnippet,
			},
		},
	}
}

// Previews returns the first InitialVisible posts, or all of them.
func (c *Catalog) Previews(all bool) PreviewPage {
	visible := c.InitialVisible
	if all || visible > len(c.Posts) {
		visible = len(c.Posts)
	}

	page := PreviewPage{
		Posts:       c.Posts[:visible],
		Total:       len(c.Posts),
		AllVisible:  all,
		ShowToggle:  len(c.Posts) > c.InitialVisible,
		ToggleLabel: c.MoreText,
	}
	if all {
		page.ToggleLabel = c.LessText
	}
	if len(c.Posts) == 0 {
		page.EmptyNotice = "No blog posts available yet. Check back soon!"
	}
	return page
}

func (c *Catalog) Find(id string) (Post, bool) {
	for _, p := range c.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

func (s *Server) listPosts(ctx *gin.Context) {
	all, _ := strconv.ParseBool(ctx.DefaultQuery("all", "false"))
	ctx.JSON(http.StatusOK, s.catalog.Previews(all))
}

func (s *Server) getPost(ctx *gin.Context) {
	post, ok := s.catalog.Find(ctx.Param("id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	ctx.JSON(http.StatusOK, post)
}
