package slicebox

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Paged collections.
const (
	IncomingPath = "/api/boxes/incoming"
	OutgoingPath = "/api/boxes/outgoing"
	LogPath      = "/api/log"
)

// Resource prefixes used by bulk actions; an entity lives at prefix + id.
const (
	IncomingResource = IncomingPath + "/"
	OutgoingResource = OutgoingPath + "/"
	LogResource      = LogPath + "/"
)

// LogSubjectBox restricts the log listing to box-related messages.
const LogSubjectBox = "Box"

// SortDirection is the direction a table asks its loader to sort by.
type SortDirection string

const (
	SortNone       SortDirection = ""
	SortAscending  SortDirection = "ASCENDING"
	SortDescending SortDirection = "DESCENDING"
)

// pageRef builds "<path>?startindex=<s>&count=<c>" in that literal order.
func pageRef(path string, startIndex, count int) string {
	return path + "?startindex=" + strconv.Itoa(startIndex) + "&count=" + strconv.Itoa(count)
}

func (c *Client) loadPage(ctx context.Context, ref string, startIndex, count int) (Page, error) {
	var records []Record
	if err := c.do(ctx, "GET", ref, nil, &records); err != nil {
		return Page{}, err
	}
	return Page{StartIndex: startIndex, Count: count, Records: records}, nil
}

// LoadIncomingPage fetches one page of incoming box transactions.
//
// orderByProperty and orderByDirection are accepted but not sent: the
// incoming listing is not sorted server-side.
func (c *Client) LoadIncomingPage(ctx context.Context, startIndex, count int, orderByProperty string, orderByDirection SortDirection) (Page, error) {
	return c.loadPage(ctx, pageRef(IncomingPath, startIndex, count), startIndex, count)
}

// LoadOutgoingPage fetches one page of outgoing box transactions.
// Sort arguments are accepted but not sent, as for LoadIncomingPage.
func (c *Client) LoadOutgoingPage(ctx context.Context, startIndex, count int, orderByProperty string, orderByDirection SortDirection) (Page, error) {
	return c.loadPage(ctx, pageRef(OutgoingPath, startIndex, count), startIndex, count)
}

// LoadLogPage fetches one page of log messages with subject Box.
func (c *Client) LoadLogPage(ctx context.Context, startIndex, count int) (Page, error) {
	ref := pageRef(LogPath, startIndex, count) + "&subject=" + LogSubjectBox
	return c.loadPage(ctx, ref, startIndex, count)
}

// DeleteEntities issues DELETE <prefix><id> for every id. All ids are
// attempted; failures are joined into the returned error.
func (c *Client) DeleteEntities(ctx context.Context, prefix string, ids []int64) error {
	var errs []error
	for _, id := range ids {
		ref := prefix + strconv.FormatInt(id, 10)
		if err := c.do(ctx, "DELETE", ref, nil, nil); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// image is the part of a transaction image the tagger needs.
type image struct {
	ID       int64 `json:"id"`
	SeriesID int64 `json:"seriesId"`
}

// SeriesTag is a named label attached to a series.
type SeriesTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TagSeries attaches every tag to every series touched by the entities
// under prefix. Series are looked up through <prefix><id>/images and each
// distinct series is tagged once per tag.
func (c *Client) TagSeries(ctx context.Context, prefix string, ids []int64, tags []string) error {
	if len(tags) == 0 {
		return errors.New("no tags given")
	}

	seen := make(map[int64]struct{})
	var series []int64
	var errs []error
	for _, id := range ids {
		var images []image
		ref := prefix + strconv.FormatInt(id, 10) + "/images"
		if err := c.do(ctx, "GET", ref, nil, &images); err != nil {
			errs = append(errs, err)
			continue
		}
		for _, img := range images {
			if _, ok := seen[img.SeriesID]; ok {
				continue
			}
			seen[img.SeriesID] = struct{}{}
			series = append(series, img.SeriesID)
		}
	}

	for _, seriesID := range series {
		ref := fmt.Sprintf("/api/metadata/series/%d/seriestags", seriesID)
		for _, tag := range tags {
			if err := c.do(ctx, "POST", ref, SeriesTag{ID: -1, Name: tag}, nil); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
