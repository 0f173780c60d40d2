package page

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/crumb/internal/errors"
)

const postHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Instagram</title>
  <meta property="og:title" content="chef_mike on Instagram: One-pot orzo">
  <meta property="og:description" content="1,234 likes, 56 comments - chef_mike on March 3, 2024: One-pot orzo">
  <script>var blob = "a very long script string that must never be treated as content at all";</script>
</head>
<body>
  <nav><a href="/">Home</a> <a href="/explore">Explore the whole site and everything on it today</a></nav>
  <div class="post">
    <header><span class="user">chef_mike</span> • Follow</header>
    <h1>One-pot chicken orzo<br>1 cup orzo<br>2 chicken thighs<br><br>Simmer for 20 minutes until creamy.</h1>
  </div>
  <ul class="links">
    <li><a href="/about">About us and our very long list of partners everywhere</a></li>
  </ul>
  <footer>Meta © 2024 Instagram from Meta and a lot of other footer text here</footer>
</body>
</html>`

func TestExtractText_LongestBlock(t *testing.T) {
	doc, err := ExtractText(postHTML)
	require.NoError(t, err)

	assert.Equal(t, "chef_mike on Instagram: One-pot orzo", doc.Title)
	assert.Equal(t, "One-pot chicken orzo\n1 cup orzo\n2 chicken thighs\n\nSimmer for 20 minutes until creamy.", doc.Text)
	assert.Contains(t, doc.Description, "1,234 likes")
}

func TestExtractText_JoinsSiblingParagraphs(t *testing.T) {
	html := `<html><body><main><div class="caption">
<p>Lemon ricotta pancakes for slow Sundays</p>
<p>1 cup ricotta<br>2 eggs<br>zest of one lemon</p>
<p>Fold, rest five minutes, then cook on medium heat.</p>
</div><div>Short sidebar blurb that is long enough to qualify</div></main></body></html>`

	doc, err := ExtractText(html)
	require.NoError(t, err)

	assert.Equal(t, "Lemon ricotta pancakes for slow Sundays\n\n1 cup ricotta\n2 eggs\nzest of one lemon\n\nFold, rest five minutes, then cook on medium heat.", doc.Text)
}

func TestExtractText_FallsBackToDescription(t *testing.T) {
	html := `<html><head>
<meta property="og:description" content="Short caption from meta">
<title>Fallback title</title>
</head><body><div>tiny</div><div><a href="/x">a link that is long enough to pass the length check</a></div></body></html>`

	doc, err := ExtractText(html)
	require.NoError(t, err)

	assert.Equal(t, "Fallback title", doc.Title)
	assert.Equal(t, "Short caption from meta", doc.Text)
}

func TestExtractText_IgnoresScriptsAndNav(t *testing.T) {
	doc, err := ExtractText(postHTML)
	require.NoError(t, err)

	assert.False(t, strings.Contains(doc.Text, "script string"))
	assert.False(t, strings.Contains(doc.Text, "Explore"))
	assert.False(t, strings.Contains(doc.Text, "footer"))
}

func TestExtractText_Empty(t *testing.T) {
	_, err := ExtractText("   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}
