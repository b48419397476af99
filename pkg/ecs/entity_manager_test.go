package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	// ID从1开始
	if id1 != 1 || id2 != 2 {
		t.Errorf("Expected IDs 1 and 2, got %d and %d", id1, id2)
	}
	if em.Count() != 2 {
		t.Errorf("Count = %d, want 2", em.Count())
	}
}

func TestGenericAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 100, Y: 200})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	// 泛型与反射版本共用同一个类型键
	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found || comp.(*testPositionComponent) != pos {
		t.Error("Reflection lookup should return the same component")
	}

	if HasComponent[*testVelocityComponent](em, id) {
		t.Error("Should not have velocity component")
	}
}

func TestRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})

	RemoveComponent[*testPositionComponent](em, id)

	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Component should be removed")
	}
	if !em.Exists(id) {
		t.Error("Entity should survive component removal")
	}
}

func TestDestroyEntityIsDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})

	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}
	if !em.IsMarked(id) {
		t.Error("Entity should be marked")
	}

	removed := em.RemoveMarkedEntities()
	if len(removed) != 1 || removed[0] != id {
		t.Errorf("RemoveMarkedEntities() = %v, want [%d]", removed, id)
	}
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestDestroyEntityTwiceRemovesOnce(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.DestroyEntity(id)
	em.DestroyEntity(id)

	if got := em.RemoveMarkedEntities(); len(got) != 1 {
		t.Errorf("expected one removal, got %v", got)
	}
	// 第二次压缩不会再次返回
	if got := em.RemoveMarkedEntities(); len(got) != 0 {
		t.Errorf("expected no removals, got %v", got)
	}
	// 已删除实体再次标记无效
	em.DestroyEntity(id)
	if got := em.RemoveMarkedEntities(); len(got) != 0 {
		t.Errorf("destroying a removed entity should be a no-op, got %v", got)
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	AddComponent(em, id1, &testPositionComponent{})
	AddComponent(em, id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	AddComponent(em, id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	AddComponent(em, id3, &testVelocityComponent{})

	both := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("Expected only id1 with both components, got %v", both)
	}

	posEntities := GetEntitiesWith1[*testPositionComponent](em)
	if len(posEntities) != 2 {
		t.Errorf("Expected 2 entities with Position component, got %d", len(posEntities))
	}
	// 结果按ID升序
	if posEntities[0] != id1 || posEntities[1] != id2 {
		t.Errorf("Expected ascending order [%d %d], got %v", id1, id2, posEntities)
	}
}

func TestMarkedEntitiesReadableBeforeCompaction(t *testing.T) {
	em := NewEntityManager()

	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{X: 3})
	em.DestroyEntity(id)

	marked := em.MarkedEntities()
	if len(marked) != 1 || marked[0] != id {
		t.Fatalf("Expected marked [%d], got %v", id, marked)
	}
	// 压缩前组件仍可读取
	if pos, ok := GetComponent[*testPositionComponent](em, id); !ok || pos.X != 3 {
		t.Error("Components of a marked entity should remain readable until compaction")
	}

	em.RemoveMarkedEntities()
	if len(em.MarkedEntities()) != 0 {
		t.Error("No entities should remain marked after compaction")
	}
}
