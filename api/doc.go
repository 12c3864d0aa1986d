// Package api is the client for the blog REST backend.
//
// Every call goes through Client.Request, which sends JSON with the session
// cookie jar, tags the request with an X-Request-ID and normalizes failures:
// non-2xx responses become *Error carrying the backend "error" field (or a
// generic "API request failed with status: N"), network failures wrap
// ErrTransport.
//
//	client := api.New("http://localhost:5000", api.WithLogger(log))
//	remove := client.OnAuthStateChanged(func(authed bool) { ... })
//	defer remove()
//
//	if _, err := client.Login(ctx, "admin", "secret"); err != nil {
//	    return err
//	}
//	posts, err := client.GetBlogPosts(ctx, api.PostsQuery{Featured: true, Limit: 3})
//
// Login, Logout and CheckAuth notify auth listeners synchronously, before
// they return.
package api
