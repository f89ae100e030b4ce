package themeparks

import (
	"context"
	"errors"
	"fmt"
	"github.com/bytedance/sonic"
	"io"
	"net/http"
	"net/url"
)

type Service interface {
	Destinations(ctx context.Context) (dsts []Destination, err error)
	Entity(ctx context.Context, id string) (e Entity, err error)
	Live(ctx context.Context, id string) (l Live, err error)
	Children(ctx context.Context, id string) (c Children, err error)
	Schedule(ctx context.Context, id string, year, month int) (s Schedule, err error)
}

type service struct {
	clientHttp *http.Client
	uriBase    string
}

const pathDestinations = "/destinations"
const fmtPathEntity = "/entity/%s"
const fmtPathEntityView = "/entity/%s/%s"
const fmtPathSchedule = "/entity/%s/schedule/%d/%02d"
const viewLive = "live"
const viewChildren = "children"
const lenMaxErrBody = 200

// ErrFetchFailed covers any transport failure, non-success response or undecodable payload.
var ErrFetchFailed = errors.New("theme parks api: fetch failed")

func NewService(clientHttp *http.Client, uriBase string) Service {
	return service{
		clientHttp: clientHttp,
		uriBase:    uriBase,
	}
}

func (svc service) Destinations(ctx context.Context) (dsts []Destination, err error) {
	var resp struct {
		Destinations []Destination `json:"destinations"`
	}
	err = svc.get(ctx, pathDestinations, &resp)
	if err == nil {
		dsts = resp.Destinations
	}
	return
}

func (svc service) Entity(ctx context.Context, id string) (e Entity, err error) {
	err = svc.get(ctx, fmt.Sprintf(fmtPathEntity, url.PathEscape(id)), &e)
	return
}

func (svc service) Live(ctx context.Context, id string) (l Live, err error) {
	err = svc.get(ctx, fmt.Sprintf(fmtPathEntityView, url.PathEscape(id), viewLive), &l)
	return
}

func (svc service) Children(ctx context.Context, id string) (c Children, err error) {
	err = svc.get(ctx, fmt.Sprintf(fmtPathEntityView, url.PathEscape(id), viewChildren), &c)
	return
}

func (svc service) Schedule(ctx context.Context, id string, year, month int) (s Schedule, err error) {
	err = svc.get(ctx, fmt.Sprintf(fmtPathSchedule, url.PathEscape(id), year, month), &s)
	return
}

func (svc service) get(ctx context.Context, path string, dst any) (err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, svc.uriBase+path, nil)
	var resp *http.Response
	if err == nil {
		req.Header.Set("Accept", "application/json")
		resp, err = svc.clientHttp.Do(req)
	}
	var data []byte
	if err == nil {
		defer resp.Body.Close()
		data, err = io.ReadAll(resp.Body)
	}
	switch {
	case err != nil:
		err = fmt.Errorf("%w: GET %s: %s", ErrFetchFailed, path, err)
	case resp.StatusCode != http.StatusOK:
		err = fmt.Errorf("%w: GET %s: response status %d: %s", ErrFetchFailed, path, resp.StatusCode, truncate(data, lenMaxErrBody))
	default:
		err = sonic.Unmarshal(data, dst)
		if err != nil {
			err = fmt.Errorf("%w: GET %s: %s", ErrFetchFailed, path, err)
		}
	}
	return
}

func truncate(b []byte, lenMax int) string {
	if len(b) <= lenMax {
		return string(b)
	}
	return string(b[:lenMax]) + "..."
}
