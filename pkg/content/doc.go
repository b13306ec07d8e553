// Package content holds the practice's mocked content: blog posts and their
// categories, services, accepted insurance, self-pay pricing, telehealth
// features, the care team and the practice details shown in the footer.
//
// Fixtures are JSON or YAML documents embedded in the binary. LoadFS merges
// every document in a filesystem into an immutable Store; markdown bodies are
// rendered once at load time and sanitised before they reach a template.
//
//	store, err := content.LoadFS(content.EmbeddedFS())
//	if err != nil {
//		return err
//	}
//	for _, post := range store.PostsInCategory("prevention") {
//		fmt.Println(post.Title)
//	}
package content
