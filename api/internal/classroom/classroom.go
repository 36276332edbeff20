package classroom

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	classroomv1 "google.golang.org/api/classroom/v1"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"classroom-diag/api/internal/apperr"
)

const defaultMaxFileBytes = 20 << 20

// Options configures a Gateway. Zero values talk to the public Google endpoints.
type Options struct {
	ClassroomEndpoint string
	DriveEndpoint     string
	HTTPClient        *http.Client
	MaxFileBytes      int64
}

// Gateway wraps the Classroom and Drive read calls used by the service.
// It holds no per-user state; every call builds its clients from the token.
type Gateway struct {
	opts Options
}

func New(opts Options) *Gateway {
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = defaultMaxFileBytes
	}
	return &Gateway{opts: opts}
}

func (g *Gateway) httpClient(ctx context.Context, token string) *http.Client {
	if g.opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, g.opts.HTTPClient)
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
}

func (g *Gateway) classroomService(ctx context.Context, token string) (*classroomv1.Service, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperr.ErrUnauthorized
	}
	opts := []option.ClientOption{option.WithHTTPClient(g.httpClient(ctx, token))}
	if g.opts.ClassroomEndpoint != "" {
		opts = append(opts, option.WithEndpoint(g.opts.ClassroomEndpoint))
	}
	svc, err := classroomv1.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: classroom client: %v", apperr.ErrUpstreamFetch, err)
	}
	return svc, nil
}

func (g *Gateway) driveService(ctx context.Context, token string) (*drivev3.Service, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperr.ErrUnauthorized
	}
	opts := []option.ClientOption{option.WithHTTPClient(g.httpClient(ctx, token))}
	if g.opts.DriveEndpoint != "" {
		opts = append(opts, option.WithEndpoint(g.opts.DriveEndpoint))
	}
	svc, err := drivev3.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: drive client: %v", apperr.ErrUpstreamFetch, err)
	}
	return svc, nil
}

// Courses lists the active courses taught by the token owner. First page only.
func (g *Gateway) Courses(ctx context.Context, token string) ([]Course, error) {
	svc, err := g.classroomService(ctx, token)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Courses.List().TeacherId("me").CourseStates("ACTIVE").Context(ctx).Do()
	if err != nil {
		return nil, upstream("list courses", err)
	}
	out := make([]Course, 0, len(resp.Courses))
	for _, c := range resp.Courses {
		out = append(out, courseFrom(c))
	}
	return out, nil
}

// CourseWork lists the assignments of a course. First page only.
func (g *Gateway) CourseWork(ctx context.Context, token, courseID string) ([]Assignment, error) {
	svc, err := g.classroomService(ctx, token)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Courses.CourseWork.List(courseID).Context(ctx).Do()
	if err != nil {
		return nil, upstream("list coursework "+courseID, err)
	}
	out := make([]Assignment, 0, len(resp.CourseWork))
	for _, cw := range resp.CourseWork {
		out = append(out, assignmentFrom(cw))
	}
	return out, nil
}

// Submissions lists the student submissions of one coursework. First page only.
func (g *Gateway) Submissions(ctx context.Context, token, courseID, courseWorkID string) ([]Submission, error) {
	svc, err := g.classroomService(ctx, token)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Courses.CourseWork.StudentSubmissions.List(courseID, courseWorkID).Context(ctx).Do()
	if err != nil {
		return nil, upstream("list submissions "+courseID+"/"+courseWorkID, err)
	}
	out := make([]Submission, 0, len(resp.StudentSubmissions))
	for _, s := range resp.StudentSubmissions {
		out = append(out, submissionFrom(s))
	}
	return out, nil
}

// DriveFile downloads the raw bytes of a Drive file.
func (g *Gateway) DriveFile(ctx context.Context, token, fileID string) ([]byte, error) {
	svc, err := g.driveService(ctx, token)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, upstream("download "+fileID, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, g.opts.MaxFileBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", apperr.ErrUpstreamFetch, fileID, err)
	}
	if int64(len(b)) > g.opts.MaxFileBytes {
		return nil, fmt.Errorf("%w: file %s exceeds %d bytes", apperr.ErrUpstreamFetch, fileID, g.opts.MaxFileBytes)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: file %s is empty", apperr.ErrUpstreamFetch, fileID)
	}
	return b, nil
}

// upstream keeps the Google status code in the message when there is one.
func upstream(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := gerr.Message
		if msg == "" {
			msg = http.StatusText(gerr.Code)
		}
		return fmt.Errorf("%w: %s: %d %s", apperr.ErrUpstreamFetch, op, gerr.Code, msg)
	}
	return fmt.Errorf("%w: %s: %v", apperr.ErrUpstreamFetch, op, err)
}
