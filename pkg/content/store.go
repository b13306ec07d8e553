package content

import "slices"

// Store is the loaded, read-only content set. Accessors return copies.
type Store struct {
	practice   Practice
	categories []Category
	posts      []Post
	services   []Service
	insurance  []InsurancePlan
	pricing    []PricingRow
	telehealth []TelehealthFeature
	team       []TeamMember

	categoryIndex map[string]int
	postIndex     map[string]int
	serviceIndex  map[string]int
}

// Practice returns the clinic details.
func (s *Store) Practice() Practice {
	if s == nil {
		return Practice{}
	}
	out := s.practice
	out.Hours = slices.Clone(s.practice.Hours)
	out.Social = slices.Clone(s.practice.Social)
	return out
}

// Categories returns blog categories in declaration order.
func (s *Store) Categories() []Category {
	if s == nil {
		return nil
	}
	return slices.Clone(s.categories)
}

// Category looks up a category by slug.
func (s *Store) Category(slug string) (Category, bool) {
	if s == nil {
		return Category{}, false
	}
	idx, ok := s.categoryIndex[slug]
	if !ok {
		return Category{}, false
	}
	return s.categories[idx], true
}

// Posts returns every post, newest first.
func (s *Store) Posts() []Post {
	if s == nil {
		return nil
	}
	out := make([]Post, len(s.posts))
	for i, post := range s.posts {
		out[i] = clonePost(post)
	}
	return out
}

// Post looks up a post by slug.
func (s *Store) Post(slug string) (Post, bool) {
	if s == nil {
		return Post{}, false
	}
	idx, ok := s.postIndex[slug]
	if !ok {
		return Post{}, false
	}
	return clonePost(s.posts[idx]), true
}

// PostsInCategory returns the posts filed under category, newest first.
func (s *Store) PostsInCategory(category string) []Post {
	if s == nil {
		return nil
	}
	var out []Post
	for _, post := range s.posts {
		if post.Category == category {
			out = append(out, clonePost(post))
		}
	}
	return out
}

// Recent returns up to n of the newest posts.
func (s *Store) Recent(n int) []Post {
	posts := s.Posts()
	if n >= 0 && len(posts) > n {
		posts = posts[:n]
	}
	return posts
}

// Services returns services in declaration order.
func (s *Store) Services() []Service {
	if s == nil {
		return nil
	}
	out := make([]Service, len(s.services))
	for i, service := range s.services {
		out[i] = service
		out[i].Highlights = slices.Clone(service.Highlights)
	}
	return out
}

// Service looks up a service by slug.
func (s *Store) Service(slug string) (Service, bool) {
	if s == nil {
		return Service{}, false
	}
	idx, ok := s.serviceIndex[slug]
	if !ok {
		return Service{}, false
	}
	out := s.services[idx]
	out.Highlights = slices.Clone(out.Highlights)
	return out, true
}

// Insurance returns the insurance plans.
func (s *Store) Insurance() []InsurancePlan {
	if s == nil {
		return nil
	}
	return slices.Clone(s.insurance)
}

// Pricing returns the self-pay price list.
func (s *Store) Pricing() []PricingRow {
	if s == nil {
		return nil
	}
	return slices.Clone(s.pricing)
}

// Telehealth returns the telehealth feature list.
func (s *Store) Telehealth() []TelehealthFeature {
	if s == nil {
		return nil
	}
	return slices.Clone(s.telehealth)
}

// Team returns the care team.
func (s *Store) Team() []TeamMember {
	if s == nil {
		return nil
	}
	out := make([]TeamMember, len(s.team))
	for i, member := range s.team {
		out[i] = member
		out[i].Languages = slices.Clone(member.Languages)
	}
	return out
}

func clonePost(post Post) Post {
	post.Tags = slices.Clone(post.Tags)
	return post
}
