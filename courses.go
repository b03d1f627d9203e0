package iris

import (
	"context"
	"fmt"
)

// CoursesAPI manages hosted courses.
type CoursesAPI struct {
	client *Client
}

// List returns paginated courses.
func (c *CoursesAPI) List(page, perPage int) (PaginatedResponse[Course], error) {
	return c.ListWithContext(context.Background(), page, perPage)
}

// ListWithContext returns paginated courses with a caller-supplied context.
func (c *CoursesAPI) ListWithContext(ctx context.Context, page, perPage int) (PaginatedResponse[Course], error) {
	query := map[string]string{}
	if page > 0 {
		query["page"] = fmt.Sprintf("%d", page)
	}
	if perPage > 0 {
		query["per_page"] = fmt.Sprintf("%d", perPage)
	}
	var resp PaginatedResponse[Course]
	if err := c.client.http.get(ctx, "/api/v1/courses", query, &resp); err != nil {
		return PaginatedResponse[Course]{}, err
	}
	return resp, nil
}

// Retrieve fetches a course.
func (c *CoursesAPI) Retrieve(courseID string) (Course, error) {
	return c.RetrieveWithContext(context.Background(), courseID)
}

// RetrieveWithContext fetches a course with a caller-supplied context.
func (c *CoursesAPI) RetrieveWithContext(ctx context.Context, courseID string) (Course, error) {
	if courseID == "" {
		return Course{}, fmt.Errorf("courseID cannot be empty")
	}
	var resp Course
	if err := c.client.http.get(ctx, fmt.Sprintf("/api/v1/courses/%s", courseID), nil, &resp); err != nil {
		return Course{}, fmt.Errorf("retrieve course %s: %w", courseID, err)
	}
	return resp, nil
}

// Create creates a draft course.
func (c *CoursesAPI) Create(title, description string) (Course, error) {
	return c.CreateWithContext(context.Background(), title, description)
}

// CreateWithContext creates a course with a caller-supplied context.
func (c *CoursesAPI) CreateWithContext(ctx context.Context, title, description string) (Course, error) {
	if title == "" {
		return Course{}, fmt.Errorf("course title cannot be empty")
	}
	payload := map[string]any{"title": title}
	if description != "" {
		payload["description"] = description
	}
	var resp Course
	if err := c.client.http.post(ctx, "/api/v1/courses", payload, &resp); err != nil {
		return Course{}, err
	}
	return resp, nil
}

// Publish makes a course visible to enrollees.
func (c *CoursesAPI) Publish(courseID string) (Course, error) {
	return c.PublishWithContext(context.Background(), courseID)
}

// PublishWithContext publishes a course with a caller-supplied context.
func (c *CoursesAPI) PublishWithContext(ctx context.Context, courseID string) (Course, error) {
	if courseID == "" {
		return Course{}, fmt.Errorf("courseID cannot be empty")
	}
	var resp Course
	if err := c.client.http.post(ctx, fmt.Sprintf("/api/v1/courses/%s/publish", courseID), nil, &resp); err != nil {
		return Course{}, fmt.Errorf("publish course %s: %w", courseID, err)
	}
	return resp, nil
}
