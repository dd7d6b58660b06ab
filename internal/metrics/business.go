package metrics

// IncrementPostCreated increments post creation counter
func (m *Metrics) IncrementPostCreated() {
	m.safeExecute("IncrementPostCreated", func() {
		m.PostCreatedTotal.Inc()
	})
}

// IncrementCommentCreated increments comment creation counter
func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentCreatedTotal.Inc()
	})
}

// RecordLikeToggle records a like toggle by target kind ("post" or "comment")
// and outcome ("added" or "removed")
func (m *Metrics) RecordLikeToggle(target string, added bool) {
	m.safeExecute("RecordLikeToggle", func() {
		outcome := "removed"
		if added {
			outcome = "added"
		}
		m.LikeTogglesTotal.WithLabelValues(target, outcome).Inc()
	})
}

// RecordCascadeDelete records a cascade deletion rooted at the given entity
func (m *Metrics) RecordCascadeDelete(entity string) {
	m.safeExecute("RecordCascadeDelete", func() {
		m.CascadeDeleteTotal.WithLabelValues(entity).Inc()
	})
}

// SetPostsTotal sets total posts gauge
func (m *Metrics) SetPostsTotal(count int64) {
	m.safeExecute("SetPostsTotal", func() {
		m.PostsTotal.Set(float64(count))
	})
}

// SetCommentsTotal sets total comments gauge
func (m *Metrics) SetCommentsTotal(count int64) {
	m.safeExecute("SetCommentsTotal", func() {
		m.CommentsTotal.Set(float64(count))
	})
}
