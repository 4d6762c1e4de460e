package scraper

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

const homeHTML = `<html><body>
<div class="side_categories"><ul class="nav nav-list"><li>
  <a href="catalogue/category/books_1/index.html">Books</a>
  <ul>
    <li><a href="catalogue/category/books/travel_2/index.html">
        Travel
    </a></li>
    <li><a href="catalogue/category/books/mystery_3/index.html">
        Mystery
    </a></li>
  </ul>
</li></ul></div>
</body></html>`

const bookHTML = `<html><body>
<div id="product_gallery" class="carousel"><div class="thumbnail"><div class="carousel-inner">
  <div class="item active"><img src="../../media/cache/fe/72/fe72f0532301ec28892ae79a629a293c.jpg" alt="A Light in the Attic" /></div>
</div></div></div>
<div class="col-sm-6 product_main">
  <h1>  A Light in the Attic </h1>
  <p class="price_color">£51.77</p>
  <p class="instock availability"><i class="icon-ok"></i> In stock (22 available) </p>
  <p class="star-rating Three"><i class="icon-star"></i></p>
</div>
<div id="product_description" class="sub-header"><h2>Product Description</h2></div>
<p>It's hard to imagine a world without A Light in the Attic.</p>
<div class="sub-header"><h2>Product Information</h2></div>
<table class="table table-striped">
  <tr><th>UPC</th><td>a897fe39b1053632</td></tr>
  <tr><th>Product Type</th><td>Books</td></tr>
  <tr><th>Price (excl. tax)</th><td>£51.77</td></tr>
  <tr><th>Price (incl. tax)</th><td>£51.77</td></tr>
  <tr><th>Tax</th><td>£0.00</td></tr>
  <tr><th>Availability</th><td>In stock (22 available)</td></tr>
  <tr><th>Number of reviews</th><td>0</td></tr>
</table>
</body></html>`

const bareBookHTML = `<html><body>
<div class="product_main"><h1>Bare Book</h1>
<p class="instock availability">Out of stock</p></div>
</body></html>`

func listingHTML(hrefs []string, hasNext bool) string {
	var b strings.Builder
	b.WriteString(`<html><body><section><ol class="row">`)
	for _, h := range hrefs {
		fmt.Fprintf(&b, `<li><article class="product_pod"><h3><a href="%s" title="x">x</a></h3></article></li>`, h)
	}
	b.WriteString(`</ol>`)
	if hasNext {
		b.WriteString(`<ul class="pager"><li class="next"><a href="page-2.html">next</a></li></ul>`)
	}
	b.WriteString(`</section></body></html>`)
	return b.String()
}

func mustDoc(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		panic(err)
	}
	return doc
}

// fakeFetcher serves canned pages and records every URL requested.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[string]string{}}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) *goquery.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	html, ok := f.pages[url]
	if !ok {
		return nil
	}
	return mustDoc(html)
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
