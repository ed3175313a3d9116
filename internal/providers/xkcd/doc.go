// Package xkcd implements providers.Source for xkcd.com: it resolves a
// comic number to its image by scraping the comic page, and lists the most
// recent comics from the site's RSS feed.
package xkcd
